package handlers

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/store"
)

// AuthHandler exposes the session identity. Each call resolves the user
// into a fresh AuthStore.
type AuthHandler struct {
	api store.AuthAPI
}

// NewAuthHandler creates a handler over the SDK.
func NewAuthHandler(api store.AuthAPI) *AuthHandler {
	return &AuthHandler{api: api}
}

// RegisterTools registers the identity tools with the MCP server.
func (ah *AuthHandler) RegisterTools(s *server.MCPServer) error {
	whoami := mcp.NewTool("whoami",
		mcp.WithDescription("Return the user bound to the configured session, or {\"loggedIn\":false}"),
	)
	s.AddTool(whoami, ah.handleWhoami)
	return nil
}

func (ah *AuthHandler) handleWhoami(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	auth := store.NewAuthStore(ah.api)
	auth.FetchMe(ctx)
	st := auth.State()

	log.Debug().Bool("logged_in", st.IsLoggedIn).Msg("whoami invoked")

	out := map[string]any{"loggedIn": st.IsLoggedIn, "isAdmin": st.IsAdmin}
	if st.User != nil {
		out["user"] = st.User
	}
	b, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(b)), nil
}
