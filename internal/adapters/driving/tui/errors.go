package tui

import "errors"

// ErrMissingPropertyService is returned when the property service is not provided.
var ErrMissingPropertyService = errors.New("tui: property service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
