package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/mcp-starter/internal/lookup"
	"github.com/usestring/mcp-starter/pkg/types"
)

// GetUserProfileInput is the input for get_user_profile.
type GetUserProfileInput struct {
	UserID int `json:"userId" jsonschema:"ID of the user to fetch (positive integer)"`
}

// GetUserProfileInputSchema returns the input schema for get_user_profile,
// which adds the positivity bound the inferred schema cannot express.
func GetUserProfileInputSchema() *jsonschema.Schema {
	s, err := jsonschema.For[GetUserProfileInput](&jsonschema.ForOptions{})
	if err != nil {
		panic(fmt.Sprintf("get_user_profile input schema: %v", err))
	}
	s.Properties["userId"].Minimum = float64Ptr(1)
	return s
}

// ToolGetUserProfile fetches one user profile through the resilient lookup.
// Lookup failures are returned as error results, never as Go errors. On
// success the validated record is also returned as structured content.
func ToolGetUserProfile(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetUserProfileInput) (*sdkmcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetUserProfileInput) (*sdkmcp.CallToolResult, any, error) {
		if input.UserID < 1 {
			return nil, nil, ErrInvalidInput("userId must be a positive integer")
		}

		res := d.Lookup.Lookup(ctx, lookup.Request{ID: input.UserID})
		if res.IsError {
			return LookupResult(res), nil, nil
		}

		structured, err := types.ToAny(res.User)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding user %d: %w", input.UserID, err)
		}
		return LookupResult(res), structured, nil
	}
}
