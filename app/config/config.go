package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Orders Orders `yaml:"orders"`
	OpenAI OpenAI `yaml:"openai"`
	Voice  Voice  `yaml:"voice"`
}

type OpenAI struct {
	// Model used for chat replies and tool calling
	Chat ModelConfig `yaml:"chat"`
	// Model used for structured search query generation
	Query ModelConfig `yaml:"query"`
}

type ModelConfig struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://integrate.api.nvidia.com/v1"`
	// OpenAI token, empty token disables the model (echo mode)
	Token string `yaml:"token" example:"nvapi-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model name
	Model string `yaml:"model" example:"nvidia/llama-3.1-nemotron-70b-instruct"`
}

func (m ModelConfig) Enabled() bool {
	return m.Token != "" && m.BaseURL != "" && m.Model != ""
}

type Voice struct {
	// ElevenLabs API key, empty key disables voice endpoints
	APIKey string `yaml:"api_key" example:"sk_abc123def456ghi789jkl012mno345pqr678stu901"`
	// Voice ID used for synthesis
	VoiceID string `yaml:"voice_id" example:"JBFqnCBsd6RMkjVDRZzb"`
	// API base url, override for testing only
	BaseURL string `yaml:"base_url"`
}

type Server struct {
	// Listen address
	Addr string `yaml:"addr" example:":8000" validate:"required"`
	// Allowed CORS origin of the web client
	AllowOrigin string `yaml:"allow_origin" example:"http://localhost:3000" validate:"required"`
}

type Orders struct {
	// Path to the orders JSON file
	Path string `yaml:"path" example:"data/orders.json" validate:"required"`
	// User id assumed when a query does not name one
	DefaultUser string `yaml:"default_user" example:"user_darshan" validate:"required"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":8000"
	}
	if result.Server.AllowOrigin == "" {
		result.Server.AllowOrigin = "http://localhost:3000"
	}
	if result.Orders.Path == "" {
		result.Orders.Path = "data/orders.json"
	}
	if result.Orders.DefaultUser == "" {
		result.Orders.DefaultUser = "user_darshan"
	}
	if result.Voice.VoiceID == "" {
		result.Voice.VoiceID = "JBFqnCBsd6RMkjVDRZzb"
	}
	if result.Voice.BaseURL == "" {
		result.Voice.BaseURL = "https://api.elevenlabs.io"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
