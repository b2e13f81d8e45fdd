package mcp

import (
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Properties drives extraction and listing management.
	Properties driving.PropertyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Properties == nil {
		return ErrMissingPropertyService
	}
	return nil
}
