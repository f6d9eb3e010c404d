package ports

import "go.trai.ch/recipe/internal/core/domain"

// PackageStore records which packages have already been built. A record is
// keyed by the package reference together with its identity ID, so equal
// identities of different references never share a record.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackageStore interface {
	// Get retrieves the record stored for a reference and identity ID.
	// Returns nil, nil if not found.
	Get(root, reference, identityID string) (*domain.PackageRecord, error)

	// Put stores the record under its reference and identity ID.
	Put(root string, record domain.PackageRecord) error
}
