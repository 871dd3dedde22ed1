package ordersearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"echoeats/app/service/orders"

	_ "embed"

	"github.com/sashabaranov/go-openai"
)

//go:embed query_prompt.txt
var queryPromptTemplate string

const maxGenerateDuration = 30 * time.Second

// Generator is the LLM-assisted resolver strategy: the model turns a
// natural-language query into QueryParams, which are then executed
// against the store. Unlike KeywordSearch this path has no deterministic
// fallback: a missing client or unparsable model output is a hard error.
type Generator struct {
	ordersSvc *orders.Service

	client *openai.Client
	model  string

	now func() time.Time
}

func NewGenerator(ordersSvc *orders.Service, client *openai.Client, model string) *Generator {
	return &Generator{
		ordersSvc: ordersSvc,
		client:    client,
		model:     model,
		now:       time.Now,
	}
}

func (g *Generator) Search(ctx context.Context, query, userID string) (string, error) {
	params, err := g.GenerateParams(ctx, query, userID)
	if err != nil {
		return "", fmt.Errorf("GenerateParams: %w", err)
	}

	results, err := g.Execute(params)
	if err != nil {
		return "", fmt.Errorf("Execute: %w", err)
	}

	if len(results) == 0 {
		return "No orders found matching your criteria.", nil
	}

	return formatOrders(results), nil
}

func (g *Generator) GenerateParams(ctx context.Context, query, userID string) (QueryParams, error) {
	if g.client == nil {
		return QueryParams{}, fmt.Errorf("query model is not configured")
	}

	templateValues := map[string]any{
		"user_id": userID,
		"query":   query,
	}

	prompt := queryPromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	ctx, cancel := context.WithTimeout(ctx, maxGenerateDuration)
	defer cancel()

	aiResponse, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxCompletionTokens: 1000,
			Temperature:         0.1,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return QueryParams{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return QueryParams{}, fmt.Errorf("no chat completion found")
	}

	result := aiResponse.Choices[0].Message.Content
	result = strings.Trim(result, "`")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, "json")
	result = strings.TrimSpace(result)

	var params QueryParams
	if err = json.Unmarshal([]byte(result), &params); err != nil {
		return QueryParams{}, fmt.Errorf("failed to unmarshal query params: %w", err)
	}

	if params.UserID == "" {
		params.UserID = userID
	}
	if params.Limit <= 0 {
		params.Limit = 1
	}

	return params, nil
}

// Execute applies the single highest-priority filter dimension present in
// params, deduplicates the result by order id and truncates it to the
// requested limit.
func (g *Generator) Execute(params QueryParams) ([]orders.Order, error) {
	var (
		results []orders.Order
		err     error
	)

	switch {
	case params.DayOfWeek != "":
		results = g.ordersSvc.ByDayOfWeek(params.DayOfWeek, params.UserID)

	case params.FoodItem != "":
		results = g.ordersSvc.ByItemName(params.FoodItem, params.UserID)

	case params.TimePeriod != "":
		switch params.TimePeriod {
		case periodLatest:
			if latest, ok := g.ordersSvc.Latest(params.UserID); ok {
				results = append(results, latest)
			}
		case periodLastWeek:
			start, end := lastWeekRange(g.now())
			results, err = g.ordersSvc.ByDateRange(start, end, params.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to search last week: %w", err)
			}
		default:
			return nil, fmt.Errorf("unknown time period %q", params.TimePeriod)
		}

	case params.Date != "":
		results = g.ordersSvc.ByDate(params.Date, params.UserID)

	default:
		if latest, ok := g.ordersSvc.Latest(params.UserID); ok {
			results = append(results, latest)
		}
	}

	seen := make(map[string]bool, len(results))
	unique := make([]orders.Order, 0, len(results))
	for _, order := range results {
		if seen[order.ID] {
			continue
		}

		seen[order.ID] = true
		unique = append(unique, order)

		if len(unique) >= params.Limit {
			break
		}
	}

	return unique, nil
}
