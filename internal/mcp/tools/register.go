package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all builtin tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "add",
		Description: "Add two numbers. Returns the sum as text and as structured output {sum}.",
	}, ToolAdd())

	AddTool(srv, &sdkmcp.Tool{
		Name:        "get_user_profile",
		Description: "Fetch a user profile by userId from the user directory API. Retries rate limits and transient failures with exponential backoff. Returns a formatted profile (name, username, email, phone, website, address, company) or an error result explaining why the lookup failed.",
		InputSchema: GetUserProfileInputSchema(),
	}, ToolGetUserProfile(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "get_user_profiles",
		Description: "Fetch up to 20 user profiles concurrently. Each ID is looked up independently with the same retry policy as get_user_profile; results keep input order. Structured output lists the outcome per ID.",
		InputSchema: GetUserProfilesInputSchema(),
	}, ToolGetUserProfiles(d))
}
