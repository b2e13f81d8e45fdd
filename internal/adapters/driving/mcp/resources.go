package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

const uriScheme = "estateflow://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "properties/{propertyId}",
		Name:        "property",
		Description: "A saved property listing",
		MIMEType:    "application/json",
	}, s.handlePropertyResource)
}

// handlePropertyResource returns one saved property as JSON.
func (s *Server) handlePropertyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractPropertyID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	prop, err := s.ports.Properties.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}

	data, err := json.MarshalIndent(prop, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling property: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func propertyURI(id string) string {
	return uriScheme + "properties/" + id
}

// extractPropertyID extracts the ID from a URI like estateflow://properties/{propertyId}.
func extractPropertyID(uri string) string {
	const prefix = uriScheme + "properties/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
