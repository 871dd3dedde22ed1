package chat

import (
	"net/http"
	"time"

	"echoeats/app/config"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

func createClient(cfg config.ModelConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	return openai.NewClientWithConfig(clientConfig)
}

// toolDefinitions advertises the registry to the model. Registry tools
// take a single free-form input, so every definition shares the same
// query/user_id argument shape.
func (s *Service) toolDefinitions() []openai.Tool {
	defs := make([]openai.Tool, 0, len(s.tools))

	for _, tool := range s.tools {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"query": {
							Type:        jsonschema.String,
							Description: "Natural language input for the tool",
						},
						"user_id": {
							Type:        jsonschema.String,
							Description: "User id to run the tool for, omit for the current user",
						},
					},
					Required: []string{"query"},
				},
			},
		})
	}

	return defs
}
