// Package domain defines the core business entities for EstateFlow.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Draft: Extracted property fields under review, not yet saved
//   - Property: A draft the property service has persisted
//   - FilterCriteria: Narrowing applied to the property list
//   - Stats: Summary counts for the dashboard
//   - StagedImage: An image chosen locally, awaiting upload
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
