package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptRequest(args map[string]string) *sdkmcp.GetPromptRequest {
	return &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Name: "summarize_user", Arguments: args},
	}
}

func TestHandleSummarizeUser(t *testing.T) {
	handler := HandleSummarizeUser(&Config{MaxAttempts: 3})

	res, err := handler(context.Background(), promptRequest(map[string]string{"userId": "4", "focus": "employer"}))
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	text := res.Messages[0].Content.(*sdkmcp.TextContent).Text
	assert.Contains(t, text, `{"userId": 4}`)
	assert.Contains(t, text, "up to 3 times")
	assert.Contains(t, text, "Emphasize: employer.")
	assert.Equal(t, "Summarize user 4", res.Description)
}

func TestHandleSummarizeUser_InvalidID(t *testing.T) {
	handler := HandleSummarizeUser(nil)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, err := handler(context.Background(), promptRequest(map[string]string{"userId": raw}))
		assert.Error(t, err, "userId %q", raw)
	}
}
