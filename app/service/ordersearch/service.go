package ordersearch

import (
	"context"
	"net/http"
	"time"

	"echoeats/app/config"
	"echoeats/app/service/orders"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

// Service bundles the two resolver strategies. The tool entry point and
// the MCP surface route to the generator; KeywordSearch stays available
// as the zero-dependency alternative.
type Service struct {
	cfg       *config.Config
	ordersSvc *orders.Service

	keyword   *KeywordSearch
	generator *Generator
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	ordersSvc := do.MustInvoke[*orders.Service](di)

	var client *openai.Client
	if cfg.OpenAI.Query.Enabled() {
		client = createClient(cfg.OpenAI.Query)
	}

	return &Service{
		cfg:       cfg,
		ordersSvc: ordersSvc,
		keyword:   NewKeywordSearch(ordersSvc),
		generator: NewGenerator(ordersSvc, client, cfg.OpenAI.Query.Model),
	}, nil
}

func createClient(cfg config.ModelConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	return openai.NewClientWithConfig(clientConfig)
}

func (s *Service) Keyword() *KeywordSearch {
	return s.keyword
}

// Search resolves a natural-language query through the generator strategy.
func (s *Service) Search(ctx context.Context, query, userID string) (string, error) {
	if userID == "" {
		userID = s.cfg.Orders.DefaultUser
	}

	return s.generator.Search(ctx, query, userID)
}
