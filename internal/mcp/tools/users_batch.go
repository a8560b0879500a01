package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/mcp-starter/internal/lookup"
)

// MaxBatchUsers bounds get_user_profiles input.
const MaxBatchUsers = 20

const defaultFetchWorkers = 4

// GetUserProfilesInput is the input for get_user_profiles.
type GetUserProfilesInput struct {
	UserIDs []int `json:"userIds" jsonschema:"IDs of the users to fetch (1-20 positive integers)"`
}

// GetUserProfilesOutput is the structured output for get_user_profiles.
type GetUserProfilesOutput struct {
	Results   []ProfileStatus `json:"results,omitzero"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// ProfileStatus summarizes one lookup of a batch.
type ProfileStatus struct {
	UserID   int    `json:"userId"`
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
	IsError  bool   `json:"isError"`
}

// GetUserProfilesInputSchema returns the input schema for get_user_profiles.
func GetUserProfilesInputSchema() *jsonschema.Schema {
	s, err := jsonschema.For[GetUserProfilesInput](&jsonschema.ForOptions{})
	if err != nil {
		panic(fmt.Sprintf("get_user_profiles input schema: %v", err))
	}
	ids := s.Properties["userIds"]
	ids.MinItems = intPtr(1)
	ids.MaxItems = intPtr(MaxBatchUsers)
	ids.Items.Minimum = float64Ptr(1)
	return s
}

// ToolGetUserProfiles runs independent lookups concurrently and reports them
// in input order. The result is an error only when every lookup failed.
func ToolGetUserProfiles(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetUserProfilesInput) (*sdkmcp.CallToolResult, GetUserProfilesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetUserProfilesInput) (*sdkmcp.CallToolResult, GetUserProfilesOutput, error) {
		if len(input.UserIDs) == 0 || len(input.UserIDs) > MaxBatchUsers {
			return nil, GetUserProfilesOutput{}, ErrInvalidInput(fmt.Sprintf("userIds must contain 1 to %d IDs", MaxBatchUsers))
		}
		for _, id := range input.UserIDs {
			if id < 1 {
				return nil, GetUserProfilesOutput{}, ErrInvalidInput("userIds must be positive integers")
			}
		}

		workers := defaultFetchWorkers
		if d.Config != nil && d.Config.FetchWorkers > 0 {
			workers = d.Config.FetchWorkers
		}

		results := make([]lookup.Result, len(input.UserIDs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, id := range input.UserIDs {
			g.Go(func() error {
				results[i] = d.Lookup.Lookup(gctx, lookup.Request{ID: id})
				return nil
			})
		}
		_ = g.Wait() // lookups report failures in their results

		output := GetUserProfilesOutput{
			Results: make([]ProfileStatus, len(results)),
		}
		texts := make([]string, len(results))
		for i, res := range results {
			output.Results[i] = ProfileStatus{
				UserID:   input.UserIDs[i],
				Outcome:  res.Kind.String(),
				Attempts: res.Attempts,
				IsError:  res.IsError,
			}
			if res.IsError {
				output.Failed++
			} else {
				output.Succeeded++
			}
			texts[i] = res.Text
		}

		text := strings.Join(texts, "\n\n---\n\n")
		return TextResult(text, output.Succeeded == 0), output, nil
	}
}
