// Package prompts contains MCP prompt implementations.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	MaxAttempts int // lookup attempt budget, mentioned in guidance
}
