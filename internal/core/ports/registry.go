package ports

import (
	"context"
	"io"

	"go.trai.ch/modlock/internal/core/domain"
)

// Registry defines the read-only view of the content registry used during resolution.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Project looks up a project by id or slug.
	Project(ctx context.Context, idOrSlug string) (*domain.RegistryProject, error)

	// Version looks up a single version of a project.
	Version(ctx context.Context, projectID, versionID string) (*domain.RegistryVersion, error)

	// Versions lists the versions of a project published for the loader and game version,
	// in registry order.
	Versions(ctx context.Context, projectID string, loader domain.Loader, gameVersion string) (
		[]domain.RegistryVersion, error)
}

// Download is an open artifact download.
// ContentType is empty when the header was absent and ContentLength is -1 when unknown.
// The caller must close Body.
type Download struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// Downloader defines the interface for fetching artifact files.
type Downloader interface {
	// Download issues a GET request for url.
	Download(ctx context.Context, url string) (*Download, error)
}
