package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"echoeats/app/config"

	"github.com/samber/do"
)

const (
	ttsModelID = "eleven_multilingual_v2"
	sttModelID = "scribe_v1"
	outputFmt  = "mp3_44100_128"

	requestTimeout = 60 * time.Second
)

// Client is a one-shot ElevenLabs voice client: one HTTP request per
// synthesis or transcription, no streaming. A missing API key yields a
// disabled client whose calls fail with a configuration error.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	enabled    bool
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if cfg.Voice.APIKey == "" {
		slog.Warn("ElevenLabs API key is not configured, voice endpoints disabled")
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		enabled: cfg.Voice.APIKey != "",
	}, nil
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

type sttResponse struct {
	Text string `json:"text"`
}

type apiError struct {
	Detail json.RawMessage `json:"detail"`
}

// TextToSpeech synthesizes the text and returns raw MP3 bytes.
func (c *Client) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	if !c.enabled {
		return nil, fmt.Errorf("voice client is not configured")
	}

	body, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: ttsModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		c.cfg.Voice.BaseURL, url.PathEscape(c.cfg.Voice.VoiceID), outputFmt)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.cfg.Voice.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.readError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	return audio, nil
}

// SpeechToText transcribes the audio bytes.
func (c *Client) SpeechToText(ctx context.Context, audio []byte) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("voice client is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err = part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio: %w", err)
	}

	if err = writer.WriteField("model_id", sttModelID); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish form: %w", err)
	}

	endpoint := c.cfg.Voice.BaseURL + "/v1/speech-to-text"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", c.cfg.Voice.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.readError(resp)
	}

	var result sttResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode transcript: %w", err)
	}

	return result.Text, nil
}

func (c *Client) readError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed apiError
	if err := json.Unmarshal(data, &parsed); err == nil && len(parsed.Detail) > 0 {
		return fmt.Errorf("elevenlabs returned %d: %s", resp.StatusCode, parsed.Detail)
	}

	return fmt.Errorf("elevenlabs returned %d", resp.StatusCode)
}
