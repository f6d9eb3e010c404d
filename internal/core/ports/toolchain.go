// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/recipe/internal/core/domain"

// ProfileLoader reads toolchain facts from a profile file.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ProfileLoader interface {
	// Load parses the YAML or JSONC profile at path.
	Load(path string) (domain.Toolchain, error)
}

// ToolchainDetector describes the host build environment.
type ToolchainDetector interface {
	// Detect returns the toolchain facts of the host.
	Detect() domain.Toolchain
}
