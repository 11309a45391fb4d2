package ports

import "go.trai.ch/modlock/internal/core/domain"

// LockfileStore defines the interface for persisting resolved lockfiles.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockfileStore interface {
	// Load reads the lockfile at path.
	// A missing file yields an empty lockfile and no error.
	Load(path string) (*domain.Lockfile, error)

	// Save writes the lockfile to path atomically.
	Save(path string, lock *domain.Lockfile) error
}
