package ports

import (
	"context"

	"go.trai.ch/recipe/internal/core/domain"
)

// Executor runs external build tool invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation and returns an error if it fails.
	Execute(ctx context.Context, inv domain.Invocation) error
}
