// Package cas stores the records of built packages, one file per reference and identity.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.PackageStore using a file-per-package strategy.
type Store struct{}

var _ ports.PackageStore = (*Store)(nil)

// NewStore creates a new PackageStore. The root directory is passed on every call.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record stored for a reference and identity ID.
func (s *Store) Get(root, reference, identityID string) (*domain.PackageRecord, error) {
	filename := s.filename(root, reference, identityID)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		err = zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "reference", reference)
		return nil, zerr.With(err, "identity", identityID)
	}

	var record domain.PackageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "reference", reference)
		return nil, zerr.With(err, "identity", identityID)
	}
	return &record, nil
}

// Put stores the record under its reference and identity ID, replacing any earlier record.
func (s *Store) Put(root string, record domain.PackageRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(root, record.Reference, record.IdentityID)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(root, reference, identityID string) string {
	hash := sha256.Sum256([]byte(reference + "#" + identityID))
	return filepath.Join(root, domain.DefaultStorePath(), hex.EncodeToString(hash[:])+".json")
}
