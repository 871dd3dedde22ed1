package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"echoeats/app/config"
	"echoeats/app/service/history"
	"echoeats/app/service/ordersearch"

	_ "embed"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/tools"
)

//go:embed system_prompt.txt
var systemPrompt string

const (
	defaultTemperature = 0.7
	maxReplyDuration   = 60 * time.Second
)

// Service is the per-request chat orchestrator: it resolves the session,
// assembles the model context from prior turns, executes at most one tool
// round-trip and persists the finished exchange. ChatOnce never fails:
// anything going wrong degrades to an echo reply.
type Service struct {
	cfg        *config.Config
	historySvc *history.Service

	client *openai.Client
	model  string
	tools  []tools.Tool
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	searchSvc := do.MustInvoke[*ordersearch.Service](di)

	var client *openai.Client
	if cfg.OpenAI.Chat.Enabled() {
		client = createClient(cfg.OpenAI.Chat)
		slog.Info("Chat model configured", "model", cfg.OpenAI.Chat.Model)
	} else {
		slog.Warn("Chat model is not configured, running in echo mode")
	}

	return &Service{
		cfg:        cfg,
		historySvc: do.MustInvoke[*history.Service](di),
		client:     client,
		model:      cfg.OpenAI.Chat.Model,
		tools:      []tools.Tool{searchSvc.Tool()},
	}, nil
}

func (s *Service) ChatOnce(ctx context.Context, message, sessionID string) ChatResult {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if s.client == nil {
		return s.echo(message, sessionID)
	}

	reply, err := s.generateReply(ctx, message, sessionID)
	if err != nil {
		slog.Error("Failed to generate reply, falling back to echo",
			"session_id", sessionID,
			"error", err)
		return s.echo(message, sessionID)
	}

	s.historySvc.Append(sessionID, message, reply)

	return ChatResult{
		Reply:        reply,
		SessionID:    sessionID,
		MessageCount: s.historySvc.Count(sessionID),
	}
}

// echo is the designed degraded mode, not an error path.
func (s *Service) echo(message, sessionID string) ChatResult {
	return ChatResult{
		Reply:        "echo: " + message,
		SessionID:    sessionID,
		MessageCount: 0,
	}
}

func (s *Service) generateReply(ctx context.Context, message, sessionID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, maxReplyDuration)
	defer cancel()

	messages := s.assembleContext(message, sessionID)

	response, err := s.complete(ctx, messages, s.toolDefinitions())
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(response.ToolCalls) == 0 {
		return response.Content, nil
	}

	// One tool round-trip: run every requested tool, feed the results
	// back and ask for the final answer without advertising tools again.
	messages = append(messages, response)

	for _, call := range response.ToolCalls {
		output := s.runTool(ctx, call)

		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    output,
			ToolCallID: call.ID,
		})
	}

	final, err := s.complete(ctx, messages, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create final chat completion: %w", err)
	}

	return final.Content, nil
}

func (s *Service) assembleContext(message, sessionID string) []openai.ChatCompletionMessage {
	turns := s.historySvc.Load(sessionID)

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, turn := range turns {
		role := openai.ChatMessageRoleUser
		if turn.Role == history.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}

func (s *Service) complete(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
	toolDefs []openai.Tool,
) (openai.ChatCompletionMessage, error) {
	aiResponse, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:               s.model,
			Messages:            messages,
			Temperature:         defaultTemperature,
			MaxCompletionTokens: 2000,
			Tools:               toolDefs,
		},
	)
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}

	if len(aiResponse.Choices) == 0 {
		return openai.ChatCompletionMessage{}, fmt.Errorf("no chat completion found")
	}

	return aiResponse.Choices[0].Message, nil
}

// runTool executes a single tool call, reporting failures inline as the
// tool's textual result so one broken call never aborts the others.
func (s *Service) runTool(ctx context.Context, call openai.ToolCall) string {
	tool := s.lookupTool(call.Function.Name)
	if tool == nil {
		slog.Warn("Model requested unknown tool", "name", call.Function.Name)
		return fmt.Sprintf("tool %q is not available", call.Function.Name)
	}

	start := time.Now()

	output, err := tool.Call(ctx, call.Function.Arguments)
	if err != nil {
		slog.Error("Tool call failed",
			"tool", call.Function.Name,
			"error", err)
		return fmt.Sprintf("tool %s failed: %s", call.Function.Name, err.Error())
	}

	slog.Info("Tool call finished",
		"tool", call.Function.Name,
		"duration", time.Since(start))

	return output
}

func (s *Service) lookupTool(name string) tools.Tool {
	for _, tool := range s.tools {
		if tool.Name() == name {
			return tool
		}
	}

	return nil
}

// History projects the session's turns into a role/content list. It never
// fails: an unknown session yields an empty list.
func (s *Service) History(sessionID string) []HistoryEntry {
	turns := s.historySvc.Load(sessionID)

	result := make([]HistoryEntry, 0, len(turns))
	for _, turn := range turns {
		result = append(result, HistoryEntry{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	return result
}
