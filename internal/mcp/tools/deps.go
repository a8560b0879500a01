package tools

import (
	"github.com/usestring/mcp-starter/internal/cache"
	"github.com/usestring/mcp-starter/internal/config"
	"github.com/usestring/mcp-starter/internal/lookup"
	"github.com/usestring/mcp-starter/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client *client.Client
	Lookup *lookup.Service
	Cache  *cache.UserCache
	Config *config.Config
}
