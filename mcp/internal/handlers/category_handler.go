package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
)

// CategoryAPI is the SDK call behind list_categories.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]client.Category, error)
}

// CategoryHandler exposes the category list.
type CategoryHandler struct {
	api CategoryAPI
}

func NewCategoryHandler(api CategoryAPI) *CategoryHandler { return &CategoryHandler{api: api} }

func (ch *CategoryHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_categories",
		mcp.WithDescription("List event categories (returns id, name & description)"),
	)
	s.AddTool(list, ch.handleListCategories)
	return nil
}

func (ch *CategoryHandler) handleListCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("list_categories invoked")

	start := time.Now()
	cats, err := ch.api.ListCategories(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("list_categories failed")
		return mcp.NewToolResultError(client.ErrorMessage(err)), nil
	}

	b, _ := json.Marshal(cats)
	return mcp.NewToolResultText(string(b)), nil
}
