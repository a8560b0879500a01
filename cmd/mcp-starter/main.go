package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/mcp-starter/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A nil client is built from the environment:
	// - USERS_API_BASE_URL: users API (default https://jsonplaceholder.typicode.com)
	// - LOOKUP_MAX_ATTEMPTS, LOOKUP_INITIAL_DELAY_MS: retry policy (3, 1000)
	// - LOG_LEVEL, LOG_FILE: logging (info, stderr only)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(nil)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting MCP server on stdio", "users_api", server.Deps().Client.BaseURL())
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
