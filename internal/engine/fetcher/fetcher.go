// Package fetcher downloads resolved artifacts and verifies their SHA-512 digests.
package fetcher

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// allowedMediaTypes are the content types accepted for artifact downloads.
var allowedMediaTypes = map[string]struct{}{
	"application/java-archive": {},
	"application/zip":          {},
}

// Fetcher materializes the primary files of resolved versions on disk.
type Fetcher struct {
	downloader ports.Downloader
	logger     ports.Logger
	tracer     ports.Tracer
	metrics    ports.Metrics
}

// NewFetcher creates a new Fetcher.
func NewFetcher(
	downloader ports.Downloader,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Fetcher {
	return &Fetcher{
		downloader: downloader,
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// Fetch ensures every primary file of res exists in destDir with the declared
// SHA-512 digest and returns the matching lockfile records.
// Files already present are not downloaded again, only verified.
func (f *Fetcher) Fetch(
	ctx context.Context, loader domain.Loader, res *domain.Resolved, destDir string,
) ([]domain.Artifact, error) {
	files := res.Version.PrimaryFiles()
	artifacts := make([]domain.Artifact, 0, len(files))

	for _, file := range files {
		artifact, err := f.fetchFile(ctx, loader, res, file, destDir)
		if err != nil {
			err = zerr.With(err, "project", res.Project.Slug)
			return nil, zerr.With(err, "version", res.Version.VersionNumber)
		}
		artifacts = append(artifacts, artifact)
	}

	return artifacts, nil
}

// Describe builds the lockfile records of res from registry metadata alone.
func (f *Fetcher) Describe(loader domain.Loader, res *domain.Resolved) ([]domain.Artifact, error) {
	files := res.Version.PrimaryFiles()
	artifacts := make([]domain.Artifact, 0, len(files))

	for _, file := range files {
		if err := checkFile(file); err != nil {
			err = zerr.With(err, "project", res.Project.Slug)
			return nil, zerr.With(err, "version", res.Version.VersionNumber)
		}
		artifacts = append(artifacts, newArtifact(res, file))
		f.metrics.ArtifactProcessed(loader, domain.OutcomeDescribed)
	}

	return artifacts, nil
}

func (f *Fetcher) fetchFile(
	ctx context.Context, loader domain.Loader, res *domain.Resolved, file domain.RegistryFile, destDir string,
) (domain.Artifact, error) {
	ctx, span := f.tracer.Start(ctx, "fetch "+file.Filename,
		ports.WithAttribute("project", res.Project.Slug),
		ports.WithAttribute("version", res.Version.VersionNumber),
	)
	defer span.End()

	if err := checkFile(file); err != nil {
		span.RecordError(err)
		return domain.Artifact{}, err
	}

	path := filepath.Join(destDir, file.Filename)
	outcome := domain.OutcomeReused

	_, err := os.Stat(path)
	switch {
	case err == nil:
		f.logger.Debug(fmt.Sprintf("%s already exists, verifying", path))
	case errors.Is(err, fs.ErrNotExist):
		if err := f.download(ctx, file, path); err != nil {
			span.RecordError(err)
			return domain.Artifact{}, err
		}
		outcome = domain.OutcomeDownloaded
	default:
		err = zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", path)
		span.RecordError(err)
		return domain.Artifact{}, err
	}

	if err := verify(path, file.SHA512); err != nil {
		span.RecordError(err)
		return domain.Artifact{}, err
	}

	span.SetAttribute("outcome", string(outcome))
	f.metrics.ArtifactProcessed(loader, outcome)

	return newArtifact(res, file), nil
}

func (f *Fetcher) download(ctx context.Context, file domain.RegistryFile, path string) error {
	dl, err := f.downloader.Download(ctx, file.URL)
	if err != nil {
		return err
	}
	defer func() {
		_ = dl.Body.Close()
	}()

	if !allowedContentType(dl.ContentType) {
		err := zerr.With(domain.ErrUnexpectedContentType, "content_type", dl.ContentType)
		return zerr.With(err, "url", file.URL)
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}

	written, err := io.Copy(out, dl.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}

	f.metrics.BytesDownloaded(written)

	switch {
	case dl.ContentLength < 0:
		f.logger.Debug(fmt.Sprintf("%s was served without a content length", file.Filename))
	case dl.ContentLength != written:
		f.logger.Warn(fmt.Sprintf("%s: content length is %d but %d bytes were written",
			file.Filename, dl.ContentLength, written))
		f.metrics.Warning(domain.WarningContentLength)
	}

	f.logger.Debug(fmt.Sprintf("downloaded %s (%d bytes)", path, written))
	return nil
}

func checkFile(file domain.RegistryFile) error {
	if file.SHA512 == "" {
		return zerr.With(domain.ErrMissingChecksum, "file", file.Filename)
	}
	switch name := file.Filename; {
	case name == "", name == ".", name == "..", strings.ContainsAny(name, `/\`):
		return zerr.With(domain.ErrInvalidFilename, "file", name)
	}
	return nil
}

func allowedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := allowedMediaTypes[mediaType]
	return ok
}

// verify streams the file at path through SHA-512 and compares the digest.
func verify(path, expected string) error {
	file, err := os.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", path)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha512.New()
	if _, err := io.Copy(hash, file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", path)
	}

	actual := hex.EncodeToString(hash.Sum(nil))
	if actual != strings.ToLower(expected) {
		err := zerr.With(domain.ErrChecksumMismatch, "path", path)
		err = zerr.With(err, "expected", strings.ToLower(expected))
		return zerr.With(err, "actual", actual)
	}

	return nil
}

func newArtifact(res *domain.Resolved, file domain.RegistryFile) domain.Artifact {
	return domain.Artifact{
		ProjectID:     res.Project.ID,
		ProjectSlug:   res.Project.Slug,
		VersionID:     res.Version.ID,
		VersionNumber: res.Version.VersionNumber,
		Filename:      file.Filename,
		Checksum:      strings.ToLower(file.SHA512),
	}
}
