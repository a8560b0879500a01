// Package tools contains the MCP tool implementations.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/mcp-starter/internal/lookup"
)

// MIME type constant.
const MimeJSON = "application/json"

// TextResult creates a CallToolResult with a single text content item.
func TextResult(text string, isError bool) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: text},
		},
		IsError: isError,
	}
}

// LookupResult converts a lookup.Result into a tool result.
func LookupResult(res lookup.Result) *sdkmcp.CallToolResult {
	return TextResult(res.Text, res.IsError)
}

func float64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int             { return &i }
