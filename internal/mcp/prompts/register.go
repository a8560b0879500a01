package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "summarize_user",
		Description: "Fetch a user profile with get_user_profile and summarize it in a few sentences.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "userId",
				Description: "ID of the user to summarize (positive integer)",
				Required:    true,
			},
			{
				Name:        "focus",
				Description: "Optional aspect to emphasize (e.g., 'contact details', 'employer')",
				Required:    false,
			},
		},
	}, HandleSummarizeUser(cfg))
}
