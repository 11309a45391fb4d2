package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrInvalidProjectSpec is returned when a manifest entry is neither "*", a version string,
	// nor a table with a single version field.
	ErrInvalidProjectSpec = zerr.New("invalid project spec, expected \"*\", a version string or { version = \"...\" }")

	// ErrUnsupportedFormat is returned when a manifest or lockfile has an unknown file extension.
	ErrUnsupportedFormat = zerr.New("unsupported file format, expected .toml, .lock, .yaml or .yml")

	// ErrLockfileReadFailed is returned when the lockfile exists but cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileMarshalFailed is returned when the lockfile cannot be serialized.
	ErrLockfileMarshalFailed = zerr.New("failed to marshal lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrLockfileStale is returned by the check command when the lockfile does not match the manifest.
	ErrLockfileStale = zerr.New("lockfile is not up to date with the manifest")

	// ErrLockedVersionMissing is returned when a locked version no longer exists in the registry.
	ErrLockedVersionMissing = zerr.New("locked version not found in registry")

	// ErrRegistryRequestFailed is returned when a registry request fails or returns a non-2xx status.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryResponseInvalid is returned when a registry response cannot be decoded.
	ErrRegistryResponseInvalid = zerr.New("failed to decode registry response")

	// ErrProjectNotFound is returned when the registry does not know a project.
	ErrProjectNotFound = zerr.New("project not found in registry")

	// ErrVersionNotFound is returned when the registry does not know a version.
	ErrVersionNotFound = zerr.New("version not found in registry")

	// ErrInvalidRegistryURL is returned when the registry base URL cannot be parsed.
	ErrInvalidRegistryURL = zerr.New("invalid registry URL")

	// ErrServerUnsupported is returned in server-only mode for a project that cannot be installed on a server.
	ErrServerUnsupported = zerr.New("project does not support server-side installs")

	// ErrNoCompatibleVersion is returned in strict mode when no version satisfies the filters.
	ErrNoCompatibleVersion = zerr.New("no compatible version found")

	// ErrResolutionFailed is returned when dependency resolution for a loader fails.
	ErrResolutionFailed = zerr.New("dependency resolution failed")

	// ErrMissingChecksum is returned when a primary file has no declared SHA-512 hash.
	ErrMissingChecksum = zerr.New("missing SHA-512 file hash in registry metadata")

	// ErrUnexpectedContentType is returned when a download is neither a JAR nor a ZIP archive.
	ErrUnexpectedContentType = zerr.New("the content type must be either a JAR archive or a ZIP file")

	// ErrDownloadFailed is returned when an artifact download fails.
	ErrDownloadFailed = zerr.New("failed to download artifact")

	// ErrArtifactWriteFailed is returned when a downloaded artifact cannot be written to disk.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrInvalidFilename is returned when a registry filename is not a plain file name.
	ErrInvalidFilename = zerr.New("registry filename must not contain path separators")

	// ErrArtifactReadFailed is returned when a local artifact cannot be read for verification.
	ErrArtifactReadFailed = zerr.New("failed to read artifact")

	// ErrChecksumMismatch is returned when a local artifact does not match its declared SHA-512 hash.
	ErrChecksumMismatch = zerr.New("artifact on local file system has mismatching hash")

	// ErrOutputDirCreateFailed is returned when the output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrMetricsWriteFailed is returned when the metrics file cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrInvalidLogFormat is returned when the log format is not auto, pretty or json.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected auto, pretty or json")

	// ErrSyncFailed is returned when a sync run fails.
	ErrSyncFailed = zerr.New("sync failed")
)
