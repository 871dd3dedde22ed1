package server

import (
	"context"

	"echoeats/app/service/ordersearch"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// MCPServer exposes the order history search over MCP stdio so external
// agent hosts can use it without going through the HTTP chat surface.
type MCPServer struct {
	searchSvc *ordersearch.Service
	srv       *mcpserver.MCPServer
}

func NewMCP(di *do.Injector) (*MCPServer, error) {
	s := &MCPServer{
		searchSvc: do.MustInvoke[*ordersearch.Service](di),
	}

	srv := mcpserver.NewMCPServer("echoeats", "1.0.0",
		mcpserver.WithToolCapabilities(false),
	)

	srv.AddTool(
		mcp.NewTool(ordersearch.ToolName,
			mcp.WithDescription("Search past food orders using a natural language query, "+
				"e.g. \"last Friday\", \"latest order\", \"pizza orders\", \"orders from last week\"."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Natural language query describing which orders to find"),
			),
			mcp.WithString("user_id",
				mcp.Description("User id to search for, defaults to the configured demo user"),
			),
		),
		s.handleSearch,
	)

	s.srv = srv

	return s, nil
}

func (s *MCPServer) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	userID := request.GetString("user_id", "")

	result, err := s.searchSvc.Search(ctx, query, userID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *MCPServer) Run() error {
	return mcpserver.ServeStdio(s.srv)
}
