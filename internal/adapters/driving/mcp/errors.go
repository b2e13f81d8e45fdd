// Package mcp provides an MCP (Model Context Protocol) server adapter for
// estateflow. It lets AI assistants extract, save and browse listings.
package mcp

import "errors"

// ErrMissingPropertyService is returned when the property service is not provided.
var ErrMissingPropertyService = errors.New("mcp: property service is required")
