// Package mcp serves the event store actions as MCP tools, over stdio when
// launched by a host process and over Streamable HTTP otherwise.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/mcp/internal/handlers"
)

const (
	serverName      = "eventboard-mcp-server"
	serverVersion   = "0.1.0"
	defaultHTTPAddr = ":3001"
	shutdownTimeout = 10 * time.Second
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server whose tools act on stores backed by sdk.
func NewServer(sdk *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerers := []struct {
		name string
		h    toolRegisterer
	}{
		{"auth", handlers.NewAuthHandler(sdk)},
		{"event", handlers.NewEventHandler(sdk)},
		{"category", handlers.NewCategoryHandler(sdk)},
	}
	for _, r := range registerers {
		if err := r.h.RegisterTools(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Run loads the configuration and serves until the transport ends or a
// shutdown signal arrives.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Logger = config.NewLogger(serverName, os.Stderr)
	zerolog.SetGlobalLevel(config.ParseLevel(cfg.LogLevel))
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().Str("api_url", cfg.APIURL).Msg("Creating client")
	sdk, err := cfg.NewClient()
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	defer func() { _ = sdk.Close() }()

	s, err := NewServer(sdk)
	if err != nil {
		return err
	}

	if shouldUseStdio(cfg.MCPAddr) {
		log.Info().Msg("Starting eventboard MCP server (stdio transport)")
		return server.ServeStdio(s)
	}

	addr := cfg.MCPAddr
	if addr == "" {
		addr = defaultHTTPAddr
	}
	return serveHTTP(s, addr)
}

func serveHTTP(s *server.MCPServer, addr string) error {
	log.Info().Str("addr", addr).Msg("Starting eventboard MCP server (Streamable HTTP)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:        addr,
		Handler:     streamSrv,
		ReadTimeout: 5 * time.Second,
		// No write deadline: responses may stream.
		IdleTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during HTTP server shutdown")
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during MCP server shutdown")
	}
	return nil
}

// shouldUseStdio picks the transport: an explicit address means HTTP,
// MCP_STDIO / MCP_HTTP force one, and otherwise stdio is used when stdin is
// not a terminal.
func shouldUseStdio(addr string) bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if addr != "" || os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
