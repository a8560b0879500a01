package prompts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleSummarizeUser builds the summarize_user prompt.
func HandleSummarizeUser(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		rawID := strings.TrimSpace(args["userId"])
		userID, err := strconv.Atoi(rawID)
		if err != nil || userID < 1 {
			return nil, fmt.Errorf("userId must be a positive integer, got %q", rawID)
		}
		focus := strings.TrimSpace(args["focus"])

		var sb strings.Builder
		sb.WriteString("# Summarize a User Profile\n\n")
		fmt.Fprintf(&sb, "1. Call `get_user_profile` with `{\"userId\": %d}`.\n", userID)
		sb.WriteString("2. If the result is an error, report the message as-is and stop. ")
		if cfg != nil && cfg.MaxAttempts > 0 {
			fmt.Fprintf(&sb, "The tool already retried up to %d times, so do not call it again in a loop.\n", cfg.MaxAttempts)
		} else {
			sb.WriteString("The tool already retries transient failures, so do not call it again in a loop.\n")
		}
		sb.WriteString("3. Otherwise write a 2-3 sentence summary: who the user is, how to reach them, and where they work.\n")
		if focus != "" {
			fmt.Fprintf(&sb, "\nEmphasize: %s.\n", focus)
		}

		return &sdkmcp.GetPromptResult{
			Description: fmt.Sprintf("Summarize user %d", userID),
			Messages: []*sdkmcp.PromptMessage{
				{Role: "user", Content: &sdkmcp.TextContent{Text: sb.String()}},
			},
		}, nil
	}
}
