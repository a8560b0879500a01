// Package mcpsrv provides an extensible MCP server template.
//
// The server ships with an add tool, a resilient user profile lookup
// (get_user_profile and get_user_profiles), a users://{userId} resource
// template and a summarize_user prompt. Extend it with your own tools,
// prompts and resources using functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer(client.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type EchoInput struct {
//	    Text string `json:"text"`
//	}
//
//	type EchoOutput struct {
//	    Text string `json:"text"`
//	}
//
//	func echo(ctx context.Context, req *mcp.CallToolRequest, in EchoInput) (*mcp.CallToolResult, EchoOutput, error) {
//	    return nil, EchoOutput{Text: in.Text}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    client.New(),
//	    mcpsrv.WithTool(&mcp.Tool{Name: "echo", Description: "Echo text back"}, echo),
//	)
//
// Tools that need the lookup service use [WithDepsTool].
//
// # Configuration
//
// Settings come from environment variables (see internal/config). Logging
// can also be overridden in code:
//
//	server, err := mcpsrv.NewServer(
//	    client.New(),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/mcp-starter.log"),
//	)
package mcpsrv
