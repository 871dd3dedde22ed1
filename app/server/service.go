package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	"echoeats/app/client/elevenlabs"
	"echoeats/app/config"
	"echoeats/app/service/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
)

const shutdownTimeout = 5 * time.Second

type Service struct {
	cfg         *config.Config
	chatSvc     *chat.Service
	voiceClient *elevenlabs.Client

	app *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:         do.MustInvoke[*config.Config](di),
		chatSvc:     do.MustInvoke[*chat.Service](di),
		voiceClient: do.MustInvoke[*elevenlabs.Client](di),
	}

	app := fiber.New(fiber.Config{
		AppName:               "echoeats",
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowOrigin,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
	}))

	app.Get("/health", s.handleHealth)
	app.Post("/chat", s.handleChat)
	app.Get("/chat/history/:sessionId", s.handleChatHistory)
	app.Post("/voice/chat", s.handleVoiceChat)
	app.Post("/voice/stt", s.handleSpeechToText)

	s.app = app

	return s, nil
}

func (s *Service) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("HTTP server listening", "addr", s.cfg.Server.Addr)

	if err := s.app.Listen(s.cfg.Server.Addr); err != nil {
		return fmt.Errorf("server listen failed: %w", err)
	}

	return nil
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "ok"})
}

func (s *Service) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result := s.chatSvc.ChatOnce(c.UserContext(), req.Message, req.SessionID)

	return c.JSON(chatResponse{
		Reply:        result.Reply,
		SessionID:    result.SessionID,
		MessageCount: result.MessageCount,
	})
}

func (s *Service) handleChatHistory(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	return c.JSON(chatHistoryResponse{
		SessionID: sessionID,
		History:   s.chatSvc.History(sessionID),
	})
}

func (s *Service) handleVoiceChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result := s.chatSvc.ChatOnce(c.UserContext(), req.Message, req.SessionID)

	// Synthesis failure degrades to a text-only reply
	var encoded string
	audio, err := s.voiceClient.TextToSpeech(c.UserContext(), result.Reply)
	if err != nil {
		slog.Error("Text to speech failed", "error", err)
	} else {
		encoded = base64.StdEncoding.EncodeToString(audio)
	}

	return c.JSON(voiceChatResponse{
		Reply:        result.Reply,
		Audio:        encoded,
		SessionID:    result.SessionID,
		MessageCount: result.MessageCount,
	})
}

func (s *Service) handleSpeechToText(c *fiber.Ctx) error {
	header, err := c.FormFile("audio_file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "audio_file is required")
	}

	file, err := header.Open()
	if err != nil {
		slog.Error("Failed to open uploaded audio", "error", err)
		return c.JSON(speechToTextResponse{Success: false})
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded audio", "error", err)
		return c.JSON(speechToTextResponse{Success: false})
	}

	text, err := s.voiceClient.SpeechToText(c.UserContext(), audio)
	if err != nil {
		slog.Error("Speech to text failed", "error", err)
		return c.JSON(speechToTextResponse{Success: false})
	}

	return c.JSON(speechToTextResponse{Text: text, Success: true})
}
