package app_test

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/adapters/config"
	"go.trai.ch/modlock/internal/adapters/logger"
	"go.trai.ch/modlock/internal/adapters/telemetry"
	"go.trai.ch/modlock/internal/app"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/modlock/internal/core/ports/mocks"
	"go.trai.ch/modlock/internal/engine/fetcher"
	"go.trai.ch/modlock/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var jar = []byte("PK\x03\x04 lithium")

func jarDigest() string {
	sum := sha512.Sum512(jar)
	return hex.EncodeToString(sum[:])
}

type testApp struct {
	app        *app.App
	manifests  *mocks.MockManifestLoader
	store      *mocks.MockLockfileStore
	registry   *mocks.MockRegistry
	downloader *mocks.MockDownloader
	logger     *mocks.MockLogger
	metrics    *mocks.MockMetrics
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	ta := &testApp{
		manifests:  mocks.NewMockManifestLoader(ctrl),
		store:      mocks.NewMockLockfileStore(ctrl),
		registry:   mocks.NewMockRegistry(ctrl),
		downloader: mocks.NewMockDownloader(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
		metrics:    mocks.NewMockMetrics(ctrl),
	}

	ta.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	ta.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	ta.metrics.EXPECT().ResolvedVersions(gomock.Any(), gomock.Any()).AnyTimes()
	ta.metrics.EXPECT().ArtifactProcessed(gomock.Any(), gomock.Any()).AnyTimes()
	ta.metrics.EXPECT().BytesDownloaded(gomock.Any()).AnyTimes()

	tracer := telemetry.NewNoOpTracer()
	ta.app = app.New(
		ta.manifests,
		ta.store,
		ta.registry,
		resolver.NewResolver(ta.registry, ta.logger, tracer, ta.metrics),
		fetcher.NewFetcher(ta.downloader, ta.logger, tracer, ta.metrics),
		ta.logger,
		ta.metrics,
	)
	return ta
}

func lithiumProject() *domain.RegistryProject {
	return &domain.RegistryProject{
		ID:            "gvQqBUqZ",
		Slug:          "lithium",
		ClientSupport: domain.SupportOptional,
		ServerSupport: domain.SupportOptional,
	}
}

func lithiumVersion(id string, day int) domain.RegistryVersion {
	return domain.RegistryVersion{
		ID:            id,
		ProjectID:     "gvQqBUqZ",
		VersionNumber: "mc1.21.1-" + id,
		PublishedAt:   time.Date(2025, time.May, day, 0, 0, 0, 0, time.UTC),
		Loaders:       []string{"fabric"},
		Files: []domain.RegistryFile{{
			Filename: "lithium-" + id + ".jar",
			URL:      "https://cdn.test/lithium-" + id + ".jar",
			SHA512:   jarDigest(),
			Primary:  true,
		}},
	}
}

func lithiumArtifact(id string) domain.Artifact {
	return domain.Artifact{
		ProjectID:     "gvQqBUqZ",
		ProjectSlug:   "lithium",
		VersionID:     id,
		VersionNumber: "mc1.21.1-" + id,
		Filename:      "lithium-" + id + ".jar",
		Checksum:      jarDigest(),
	}
}

func manifest() *domain.Manifest {
	m := domain.NewManifest(nil, []string{"lithium"})
	return &m
}

func (ta *testApp) expectRegistry() {
	ta.registry.EXPECT().Project(gomock.Any(), "lithium").Return(lithiumProject(), nil)
	ta.registry.EXPECT().Versions(gomock.Any(), "gvQqBUqZ", domain.LoaderFabric, "1.21.1").
		Return([]domain.RegistryVersion{lithiumVersion("v1", 1), lithiumVersion("v2", 2)}, nil)
}

func (ta *testApp) expectDownload(id string) {
	ta.downloader.EXPECT().Download(gomock.Any(), "https://cdn.test/lithium-"+id+".jar").
		Return(&ports.Download{
			ContentType:   "application/java-archive",
			ContentLength: int64(len(jar)),
			Body:          io.NopCloser(bytes.NewReader(jar)),
		}, nil)
}

func syncOptions(dir string) app.SyncOptions {
	return app.SyncOptions{
		ManifestPath: filepath.Join(dir, "Modrinth.toml"),
		LockfilePath: filepath.Join(dir, "Modrinth.lock"),
		OutputDir:    filepath.Join(dir, "out"),
		GameVersion:  "1.21.1",
	}
}

func TestApp_Sync(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()
	opts := syncOptions(dir)

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(&domain.Lockfile{}, nil)
	ta.expectRegistry()
	ta.expectDownload("v2")
	ta.store.EXPECT().Save(opts.LockfilePath, &domain.Lockfile{
		Fabric: []domain.Artifact{lithiumArtifact("v2")},
	}).Return(nil)

	require.NoError(t, ta.app.Sync(context.Background(), opts))
	assert.FileExists(t, filepath.Join(dir, "out", "fabric", "lithium-v2.jar"))
	assert.NoDirExists(t, filepath.Join(dir, "out", "datapack"))
}

func TestApp_Sync_KeepsLockedVersion(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()
	opts := syncOptions(dir)
	locked := &domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(locked, nil)
	ta.expectRegistry()
	ta.expectDownload("v1")
	ta.store.EXPECT().Save(opts.LockfilePath, locked).Return(nil)

	require.NoError(t, ta.app.Sync(context.Background(), opts))
}

func TestApp_Sync_DiscardsStaleLockfile(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()
	opts := syncOptions(dir)
	stale := &domain.Lockfile{Fabric: []domain.Artifact{{ProjectID: "other", ProjectSlug: "other", VersionID: "o1"}}}

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(stale, nil)
	ta.logger.EXPECT().Warn(gomock.Any()).Times(1)
	ta.metrics.EXPECT().Warning(domain.WarningLockfileDiscarded)
	ta.expectRegistry()
	ta.expectDownload("v2")
	ta.store.EXPECT().Save(opts.LockfilePath, gomock.Any()).Return(nil)

	require.NoError(t, ta.app.Sync(context.Background(), opts))
}

func TestApp_Sync_UnreadableLockfile(t *testing.T) {
	ta := newTestApp(t)
	opts := syncOptions(t.TempDir())
	opts.NoDownload = true

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(nil, domain.ErrLockfileParseFailed)
	// Discarding the empty replacement is not reported again.
	ta.logger.EXPECT().Warn(gomock.Any()).Times(1)
	ta.metrics.EXPECT().Warning(domain.WarningLockfileUnreadable)
	ta.expectRegistry()
	ta.store.EXPECT().Save(opts.LockfilePath, gomock.Any()).Return(nil)

	require.NoError(t, ta.app.Sync(context.Background(), opts))
}

func TestApp_Sync_UnsupportedLockfileFormat(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()
	opts := syncOptions(dir)
	opts.LockfilePath = filepath.Join(dir, "Modrinth.json")

	tracer := telemetry.NewNoOpTracer()
	a := app.New(
		ta.manifests,
		config.NewStore(),
		ta.registry,
		resolver.NewResolver(ta.registry, ta.logger, tracer, ta.metrics),
		fetcher.NewFetcher(ta.downloader, ta.logger, tracer, ta.metrics),
		ta.logger,
		ta.metrics,
	)

	// No registry or download expectations: the run must stop first.
	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)

	err := a.Sync(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSyncFailed.Error())
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
	assert.NoFileExists(t, opts.LockfilePath)
	assert.NoDirExists(t, opts.OutputDir)
}

func TestApp_Sync_NoDownload(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()
	opts := syncOptions(dir)
	opts.NoDownload = true

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)
	ta.expectRegistry()
	ta.store.EXPECT().Save(opts.LockfilePath, &domain.Lockfile{
		Fabric: []domain.Artifact{lithiumArtifact("v1")},
	}).Return(nil)

	require.NoError(t, ta.app.Sync(context.Background(), opts))
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestApp_Sync_LockfileWriteFailureIsNotFatal(t *testing.T) {
	ta := newTestApp(t)
	opts := syncOptions(t.TempDir())
	opts.NoDownload = true
	opts.MetricsFile = filepath.Join(t.TempDir(), "metrics.prom")

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)
	ta.expectRegistry()
	ta.store.EXPECT().Save(opts.LockfilePath, gomock.Any()).Return(domain.ErrLockfileWriteFailed)
	ta.logger.EXPECT().Warn(gomock.Any()).Times(1)
	ta.metrics.EXPECT().Warning(domain.WarningLockfileWriteFailed)
	ta.metrics.EXPECT().WriteFile(opts.MetricsFile).Return(nil)

	require.NoError(t, ta.app.Sync(context.Background(), opts))
}

func TestApp_Sync_ManifestError(t *testing.T) {
	ta := newTestApp(t)
	opts := syncOptions(t.TempDir())

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(nil, domain.ErrManifestReadFailed)

	err := ta.app.Sync(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSyncFailed.Error())
}

func TestApp_Sync_ResolutionErrorStillWritesMetrics(t *testing.T) {
	ta := newTestApp(t)
	opts := syncOptions(t.TempDir())
	opts.MetricsFile = filepath.Join(t.TempDir(), "metrics.prom")

	ta.manifests.EXPECT().Load(opts.ManifestPath).Return(manifest(), nil)
	ta.store.EXPECT().Load(opts.LockfilePath).Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)
	ta.registry.EXPECT().Project(gomock.Any(), "lithium").Return(nil, domain.ErrRegistryRequestFailed)
	ta.metrics.EXPECT().WriteFile(opts.MetricsFile).Return(errors.New("disk full"))
	ta.logger.EXPECT().Warn(gomock.Any()).Times(1)

	err := ta.app.Sync(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSyncFailed.Error())
}

func TestApp_Check(t *testing.T) {
	t.Run("up to date", func(t *testing.T) {
		ta := newTestApp(t)
		ta.manifests.EXPECT().Load("m").Return(manifest(), nil)
		ta.store.EXPECT().Load("l").Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)

		require.NoError(t, ta.app.Check(context.Background(), app.CheckOptions{ManifestPath: "m", LockfilePath: "l"}))
	})

	t.Run("stale", func(t *testing.T) {
		ta := newTestApp(t)
		ta.manifests.EXPECT().Load("m").Return(manifest(), nil)
		ta.store.EXPECT().Load("l").Return(&domain.Lockfile{}, nil)
		ta.logger.EXPECT().Warn(gomock.Any()).Times(1)

		err := ta.app.Check(context.Background(), app.CheckOptions{ManifestPath: "m", LockfilePath: "l"})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrLockfileStale.Error())
	})

	t.Run("remote available", func(t *testing.T) {
		ta := newTestApp(t)
		ta.manifests.EXPECT().Load("m").Return(manifest(), nil)
		ta.store.EXPECT().Load("l").Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)
		v := lithiumVersion("v1", 1)
		ta.registry.EXPECT().Version(gomock.Any(), "gvQqBUqZ", "v1").Return(&v, nil)

		err := ta.app.Check(context.Background(), app.CheckOptions{ManifestPath: "m", LockfilePath: "l", Remote: true})
		require.NoError(t, err)
	})

	t.Run("remote missing", func(t *testing.T) {
		ta := newTestApp(t)
		ta.manifests.EXPECT().Load("m").Return(manifest(), nil)
		ta.store.EXPECT().Load("l").Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)
		notFound := zerr.With(zerr.Wrap(domain.ErrVersionNotFound, "registry returned 404"), "version", "v1")
		ta.registry.EXPECT().Version(gomock.Any(), "gvQqBUqZ", "v1").Return(nil, notFound)
		ta.logger.EXPECT().Warn(gomock.Any()).Times(1)

		err := ta.app.Check(context.Background(), app.CheckOptions{ManifestPath: "m", LockfilePath: "l", Remote: true})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrLockedVersionMissing.Error())
	})

	t.Run("remote failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.manifests.EXPECT().Load("m").Return(manifest(), nil)
		ta.store.EXPECT().Load("l").Return(&domain.Lockfile{Fabric: []domain.Artifact{lithiumArtifact("v1")}}, nil)
		ta.registry.EXPECT().Version(gomock.Any(), "gvQqBUqZ", "v1").Return(nil, domain.ErrRegistryRequestFailed)

		err := ta.app.Check(context.Background(), app.CheckOptions{ManifestPath: "m", LockfilePath: "l", Remote: true})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrRegistryRequestFailed.Error())
	})
}

func TestApp_ConfigureLogging(t *testing.T) {
	log := logger.New()
	a := app.New(nil, nil, nil, nil, nil, log, nil)

	for _, format := range []string{app.LogFormatAuto, app.LogFormatPretty, app.LogFormatJSON} {
		require.NoError(t, a.ConfigureLogging(format, true), format)
	}

	err := a.ConfigureLogging("xml", false)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidLogFormat.Error())
}

func TestApp_ConfigureLogging_JSONOutput(t *testing.T) {
	log := logger.New()
	var buf bytes.Buffer
	log.(*logger.Logger).SetOutput(&buf)

	a := app.New(nil, nil, nil, nil, nil, log, nil)
	require.NoError(t, a.ConfigureLogging(app.LogFormatAuto, false))

	log.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`, "a buffer is not a terminal")
}

func TestApp_ConfigureLogging_PlainLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(nil, nil, nil, nil, nil, mocks.NewMockLogger(ctrl), nil)
	assert.NoError(t, a.ConfigureLogging("anything", false))
}
