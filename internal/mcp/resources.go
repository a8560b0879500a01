package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"

	"github.com/usestring/mcp-starter/internal/lookup"
	"github.com/usestring/mcp-starter/internal/mcp/tools"
)

// UserResourceTemplate is the URI template for user profile resources.
const UserResourceTemplate = "users://{userId}"

var userURITemplate = uritemplate.MustNew(UserResourceTemplate)

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: UserResourceTemplate,
		Name:        "User Profile",
		Description: "Validated user profile record as JSON. Fetched with the same retry policy as get_user_profile.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceUser)
}

func (s *Server) handleResourceUser(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	userID, err := parseUserURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	res := s.deps.Lookup.Lookup(ctx, lookup.Request{ID: userID})
	if res.IsError {
		if res.Kind == lookup.KindNotFound {
			return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, tools.LookupError(res)
	}

	data, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("marshaling user: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}

// parseUserURI extracts a positive user ID from a users:// URI.
func parseUserURI(uri string) (int, error) {
	values := userURITemplate.Match(uri)
	if values == nil {
		return 0, tools.ErrInvalidInput(fmt.Sprintf("unsupported resource URI: %s", uri))
	}

	raw := values.Get("userId").String()
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, tools.ErrInvalidInput(fmt.Sprintf("invalid user ID %q in %s", raw, uri))
	}
	return id, nil
}
