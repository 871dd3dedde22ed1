package ordersearch

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tmc/langchaingo/tools"
)

const ToolName = "search_order_history"

const toolDescription = "Search the user's past food orders using a natural language query. " +
	"Understands queries like \"last Friday\", \"latest order\", \"pizza orders\" or " +
	"\"orders from last week\". Input is either a plain query string or a JSON object " +
	"with query (string) and optional user_id (string) fields. " +
	"Returns formatted order information or a no-orders message."

type toolInput struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

type searchTool struct {
	svc *Service
}

var _ tools.Tool = (*searchTool)(nil)

func (t *searchTool) Name() string {
	return ToolName
}

func (t *searchTool) Description() string {
	return toolDescription
}

func (t *searchTool) Call(ctx context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)
	userID := ""

	// Models send either a bare query string or the JSON argument object.
	if strings.HasPrefix(query, "{") {
		var parsed toolInput
		if err := json.Unmarshal([]byte(query), &parsed); err == nil && parsed.Query != "" {
			query = parsed.Query
			userID = parsed.UserID
		}
	}

	return t.svc.Search(ctx, query, userID)
}

// Tool exposes the resolver as a langchaingo tool for the orchestrator's
// registry.
func (s *Service) Tool() tools.Tool {
	return &searchTool{svc: s}
}
