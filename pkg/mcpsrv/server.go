package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/mcp-starter/internal/cache"
	"github.com/usestring/mcp-starter/internal/config"
	"github.com/usestring/mcp-starter/internal/logging"
	"github.com/usestring/mcp-starter/internal/lookup"
	"github.com/usestring/mcp-starter/internal/mcp"
	"github.com/usestring/mcp-starter/internal/mcp/tools"
	"github.com/usestring/mcp-starter/internal/userschema"
	"github.com/usestring/mcp-starter/pkg/client"
)

// Server is the starter MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin tools, resources and prompts.
//
// When c is nil a users API client is built from the environment config
// (USERS_API_BASE_URL, USERS_API_USER_AGENT, HTTP_CLIENT_TIMEOUT_MS).
// Use functional options to configure logging, add custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	if c == nil {
		httpClient := cfg.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.config.HTTPClientTimeout}
		}
		c = client.New(
			client.WithBaseURL(cfg.config.UsersAPIBaseURL),
			client.WithUserAgent(cfg.config.UserAgent),
			client.WithHTTPClient(httpClient),
		)
	}

	userCache, err := cache.NewUserCache(cfg.config.UserCacheMaxItems)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create user cache: %w", err)
	}

	validator, err := userschema.New()
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to compile user schema: %w", err)
	}

	lookupOpts := []lookup.Option{
		lookup.WithMaxAttempts(cfg.config.MaxAttempts),
		lookup.WithBackoff(lookup.Backoff{
			Initial: cfg.config.InitialDelay,
			Max:     cfg.config.MaxDelay,
			Jitter:  cfg.config.Jitter,
		}),
		lookup.WithAttemptTimeout(cfg.config.AttemptTimeout),
		lookup.WithCache(userCache),
		lookup.WithLogger(slog.Default().With(slog.String("component", "lookup"))),
	}
	if cfg.lookupWait != nil {
		lookupOpts = append(lookupOpts, lookup.WithWait(cfg.lookupWait))
	}
	svc := lookup.New(c, validator, lookupOpts...)

	toolDeps := &tools.Deps{
		Client: c,
		Lookup: svc,
		Cache:  userCache,
		Config: cfg.config,
	}

	// Public deps carry the same values under the exported type.
	deps := &Deps{
		Client: c,
		Lookup: svc,
		Cache:  userCache,
		Config: cfg.config,
	}

	internalOpts := []mcp.ServerOption{
		mcp.WithToolCallLimiter(mcp.NewToolCallLimiter(cfg.config.ToolCallsPerSecond, cfg.config.ToolCallBurst)),
	}
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Deferred registrations need deps, which only exist now.
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Connect serves a single session over t. It is mainly useful with
// in-memory transports in tests.
func (s *Server) Connect(ctx context.Context, t sdkmcp.Transport) (*sdkmcp.ServerSession, error) {
	return s.internal.MCPServer().Connect(ctx, t, nil)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
