package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddInput is the input for add.
type AddInput struct {
	A float64 `json:"a" jsonschema:"First number"`
	B float64 `json:"b" jsonschema:"Second number"`
}

// AddOutput is the structured output for add.
type AddOutput struct {
	Sum float64 `json:"sum"`
}

// ToolAdd adds two numbers.
func ToolAdd() func(ctx context.Context, req *sdkmcp.CallToolRequest, input AddInput) (*sdkmcp.CallToolResult, AddOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AddInput) (*sdkmcp.CallToolResult, AddOutput, error) {
		sum := input.A + input.B
		if math.IsInf(sum, 0) || math.IsNaN(sum) {
			return nil, AddOutput{}, ErrInvalidInput("sum is out of range")
		}

		text := fmt.Sprintf("%s + %s = %s", formatNumber(input.A), formatNumber(input.B), formatNumber(sum))
		return TextResult(text, false), AddOutput{Sum: sum}, nil
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
