// Package cache provides caching utilities for the MCP server.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/mcp-starter/pkg/types"
)

// UserCache provides thread-safe LRU caching of validated user records.
//
// A nil *UserCache is valid and behaves as a cache that never hits, so
// callers do not need to branch on whether caching is enabled.
type UserCache struct {
	cache *lru.Cache[int, *types.User]
}

// NewUserCache creates a cache holding up to maxItems users.
// Returns nil when maxItems is not positive (caching disabled).
func NewUserCache(maxItems int) (*UserCache, error) {
	if maxItems <= 0 {
		return nil, nil
	}
	c, err := lru.New[int, *types.User](maxItems)
	if err != nil {
		return nil, err
	}
	return &UserCache{cache: c}, nil
}

// Get retrieves a user by ID.
func (c *UserCache) Get(userID int) (*types.User, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(userID)
}

// Put adds or updates a user.
func (c *UserCache) Put(user *types.User) {
	if c == nil || user == nil {
		return
	}
	c.cache.Add(user.ID, user)
}

// Len returns the current number of cached users.
func (c *UserCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
