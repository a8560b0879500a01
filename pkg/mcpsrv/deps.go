package mcpsrv

import (
	"github.com/usestring/mcp-starter/internal/cache"
	"github.com/usestring/mcp-starter/internal/config"
	"github.com/usestring/mcp-starter/internal/lookup"
	"github.com/usestring/mcp-starter/pkg/client"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client *client.Client
	Lookup *lookup.Service
	Cache  *cache.UserCache
	Config *config.Config
}
