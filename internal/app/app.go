// Package app implements the application layer for modlock.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/modlock/internal/engine/fetcher"
	"go.trai.ch/modlock/internal/engine/resolver"
	"go.trai.ch/modlock/internal/ui/output"
	"go.trai.ch/zerr"
)

// Log formats accepted by ConfigureLogging.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	store     ports.LockfileStore
	registry  ports.Registry
	resolver  *resolver.Resolver
	fetcher   *fetcher.Fetcher
	logger    ports.Logger
	metrics   ports.Metrics
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	store ports.LockfileStore,
	registry ports.Registry,
	res *resolver.Resolver,
	fetch *fetcher.Fetcher,
	log ports.Logger,
	metrics ports.Metrics,
) *App {
	return &App{
		manifests: manifests,
		store:     store,
		registry:  registry,
		resolver:  res,
		fetcher:   fetch,
		logger:    log,
		metrics:   metrics,
	}
}

// configurableLogger is implemented by loggers whose format can change at runtime.
type configurableLogger interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
	Output() io.Writer
}

// ConfigureLogging selects the log format and level.
// The auto format is pretty when the log output is a terminal and JSON otherwise.
func (a *App) ConfigureLogging(format string, verbose bool) error {
	log, ok := a.logger.(configurableLogger)
	if !ok {
		return nil
	}

	switch format {
	case LogFormatAuto, "":
		log.SetJSON(!output.IsTerminal(log.Output()))
	case LogFormatPretty:
		log.SetJSON(false)
	case LogFormatJSON:
		log.SetJSON(true)
	default:
		return zerr.With(domain.ErrInvalidLogFormat, "format", format)
	}

	log.SetVerbose(verbose)
	return nil
}

// SyncOptions configuration for the Sync method.
type SyncOptions struct {
	ManifestPath string
	LockfilePath string
	OutputDir    string
	GameVersion  string
	Deny         []string
	MetricsFile  string
	ServerOnly   bool
	NoDownload   bool
	Strict       bool
}

// Sync resolves the manifest, materializes the artifacts and rewrites the lockfile.
//
//nolint:cyclop // orchestration function
func (a *App) Sync(ctx context.Context, opts SyncOptions) error {
	defer a.writeMetrics(opts.MetricsFile)

	// 1. Load the manifest
	manifest, err := a.manifests.Load(opts.ManifestPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSyncFailed.Error())
	}

	// 2. Load and validate the previous lockfile
	previous, err := a.loadLockfile(opts.LockfilePath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSyncFailed.Error())
	}
	lock, ok := domain.ValidateLockfile(manifest, &previous)
	switch {
	case ok:
		a.logger.Debug(fmt.Sprintf("reusing %s", opts.LockfilePath))
	case previous.IsEmpty():
		a.logger.Debug("no usable lockfile, resolving from scratch")
	default:
		a.logger.Warn("lockfile is out of date with the manifest, resolving from scratch")
		a.metrics.Warning(domain.WarningLockfileDiscarded)
	}

	// 3. Resolve and materialize each loader independently
	denylist := domain.DefaultDenylist(opts.Deny...)
	var next domain.Lockfile

	for _, loader := range domain.Loaders() {
		entries := manifest.Entries(loader)
		if len(entries) == 0 {
			continue
		}

		resolved, err := a.resolver.Resolve(ctx, resolver.Request{
			Loader:      loader,
			GameVersion: opts.GameVersion,
			Projects:    entries,
			Lock:        lock.Index(loader),
			Denylist:    denylist,
			ServerOnly:  opts.ServerOnly,
			Strict:      opts.Strict,
		})
		if err != nil {
			return zerr.Wrap(err, domain.ErrSyncFailed.Error())
		}

		artifacts, err := a.materialize(ctx, loader, resolved, opts)
		if err != nil {
			return zerr.Wrap(err, domain.ErrSyncFailed.Error())
		}

		next.SetArtifacts(loader, artifacts)
		a.logger.Info(fmt.Sprintf("%s: locked %d files from %d projects", loader, len(artifacts), len(resolved)))
	}

	// 4. Persist the lockfile
	if err := a.store.Save(opts.LockfilePath, &next); err != nil {
		a.logger.Warn(fmt.Sprintf("could not write lockfile: %v", err))
		a.metrics.Warning(domain.WarningLockfileWriteFailed)
		return nil
	}

	a.logger.Debug(fmt.Sprintf("wrote %s", opts.LockfilePath))
	return nil
}

// loadLockfile degrades a corrupt lockfile to an empty one. A path whose
// format cannot be determined is a configuration error.
func (a *App) loadLockfile(path string) (domain.Lockfile, error) {
	lock, err := a.store.Load(path)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			return domain.Lockfile{}, err
		}
		a.logger.Warn(fmt.Sprintf("ignoring unreadable lockfile %s: %v", path, err))
		a.metrics.Warning(domain.WarningLockfileUnreadable)
		return domain.Lockfile{}, nil
	}
	return *lock, nil
}

func (a *App) materialize(
	ctx context.Context, loader domain.Loader, resolved []domain.Resolved, opts SyncOptions,
) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact

	if opts.NoDownload {
		for i := range resolved {
			described, err := a.fetcher.Describe(loader, &resolved[i])
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, described...)
		}
		return artifacts, nil
	}

	dir := domain.LoaderOutputPath(opts.OutputDir, loader)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dir)
	}

	for i := range resolved {
		fetched, err := a.fetcher.Fetch(ctx, loader, &resolved[i], dir)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, fetched...)
	}

	return artifacts, nil
}

func (a *App) writeMetrics(path string) {
	if path == "" {
		return
	}
	if err := a.metrics.WriteFile(path); err != nil {
		a.logger.Warn(fmt.Sprintf("could not write metrics: %v", err))
	}
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	ManifestPath string
	LockfilePath string
	Remote       bool
}

// Check reports whether the lockfile satisfies the manifest.
// With Remote set, every locked version is also looked up in the registry.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	manifest, err := a.manifests.Load(opts.ManifestPath)
	if err != nil {
		return err
	}

	lock, err := a.store.Load(opts.LockfilePath)
	if err != nil {
		return err
	}

	var stale []string
	for _, loader := range domain.Loaders() {
		if lock.UpToDate(manifest, loader) {
			a.logger.Info(fmt.Sprintf("%s: up to date (%d files)", loader, len(lock.Artifacts(loader))))
			continue
		}
		a.logger.Warn(fmt.Sprintf("%s: lockfile does not satisfy the manifest", loader))
		stale = append(stale, loader.String())
	}

	if len(stale) > 0 {
		return zerr.With(domain.ErrLockfileStale, "loaders", strings.Join(stale, ","))
	}

	if !opts.Remote {
		return nil
	}

	return a.checkRemote(ctx, lock)
}

func (a *App) checkRemote(ctx context.Context, lock *domain.Lockfile) error {
	var missing []string
	for _, loader := range domain.Loaders() {
		for _, art := range lock.Artifacts(loader) {
			_, err := a.registry.Version(ctx, art.ProjectID, art.VersionID)
			switch {
			case err == nil:
				a.logger.Debug(fmt.Sprintf("%s %s is available", art.ProjectSlug, art.VersionNumber))
			case errors.Is(err, domain.ErrVersionNotFound):
				a.logger.Warn(fmt.Sprintf("%s %s is no longer published", art.ProjectSlug, art.VersionNumber))
				missing = append(missing, art.String())
			default:
				return err
			}
		}
	}

	if len(missing) > 0 {
		return zerr.With(domain.ErrLockedVersionMissing, "artifacts", strings.Join(missing, ","))
	}

	a.logger.Info("all locked versions are available in the registry")
	return nil
}
