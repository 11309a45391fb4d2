// Package metrics implements ports.Metrics with Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/zerr"
)

const namespace = "modlock"

// Recorder collects run metrics in a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	resolved  *prometheus.GaugeVec
	artifacts *prometheus.CounterVec
	bytes     prometheus.Counter
	warnings  *prometheus.CounterVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_requests_total",
			Help:      "HTTP requests issued to the content registry, by status code and method.",
		}, []string{"code", "method"}),
		resolved: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resolved_versions",
			Help:      "Number of (project, version) pairs in the last resolution of a loader.",
		}, []string{"loader"}),
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_total",
			Help:      "Artifacts recorded in the lockfile, by loader and outcome.",
		}, []string{"loader", "outcome"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bytes_total",
			Help:      "Bytes written to disk by artifact downloads.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Soft failures that did not abort the run, by reason.",
		}, []string{"reason"}),
	}

	r.registry.MustRegister(r.requests, r.resolved, r.artifacts, r.bytes, r.warnings)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// InstrumentTransport wraps next so every round trip is counted.
func (r *Recorder) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(r.requests, next)
}

// ResolvedVersions records the size of a loader's resolved set.
func (r *Recorder) ResolvedVersions(loader domain.Loader, count int) {
	r.resolved.WithLabelValues(loader.String()).Set(float64(count))
}

// ArtifactProcessed counts one artifact by outcome.
func (r *Recorder) ArtifactProcessed(loader domain.Loader, outcome domain.ArtifactOutcome) {
	r.artifacts.WithLabelValues(loader.String(), string(outcome)).Inc()
}

// BytesDownloaded adds n to the downloaded byte total.
func (r *Recorder) BytesDownloaded(n int64) {
	if n > 0 {
		r.bytes.Add(float64(n))
	}
}

// Warning counts one soft failure.
func (r *Recorder) Warning(reason domain.WarningReason) {
	r.warnings.WithLabelValues(string(reason)).Inc()
}

// WriteFile writes all collected metrics in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}
