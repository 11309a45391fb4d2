package ports

import "go.trai.ch/modlock/internal/core/domain"

// ManifestLoader defines the interface for loading the project manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads and normalizes the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
