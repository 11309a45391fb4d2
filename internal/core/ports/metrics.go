package ports

import (
	"net/http"

	"go.trai.ch/modlock/internal/core/domain"
)

// Metrics records counters about a run.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// InstrumentTransport wraps a registry transport to count requests by status code.
	InstrumentTransport(next http.RoundTripper) http.RoundTripper
	// ResolvedVersions records the size of a loader's resolved set.
	ResolvedVersions(loader domain.Loader, count int)
	// ArtifactProcessed counts one artifact by outcome.
	ArtifactProcessed(loader domain.Loader, outcome domain.ArtifactOutcome)
	// BytesDownloaded adds to the downloaded byte total.
	BytesDownloaded(n int64)
	// Warning counts one soft failure by reason.
	Warning(reason domain.WarningReason)
	// WriteFile writes all metrics in the Prometheus text format to path.
	WriteFile(path string) error
}
