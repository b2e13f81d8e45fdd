// Package tui provides the interactive terminal front end for estateflow.
// It is a driving adapter: every service call goes through driving ports.
package tui

import (
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Properties extracts, saves and lists listings. Required.
	Properties driving.PropertyService

	// Images uploads and fetches property images. Optional; without it the
	// image row still stages files but no thumbnail is awaited.
	Images driving.ImageService

	// Settings supplies UI timings and the service address. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate.
func NewPorts(properties driving.PropertyService, images driving.ImageService, settings driving.SettingsService) *Ports {
	return &Ports{
		Properties: properties,
		Images:     images,
		Settings:   settings,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Properties == nil {
		return ErrMissingPropertyService
	}
	return nil
}
