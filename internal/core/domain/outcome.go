package domain

// ArtifactOutcome describes how an artifact record was obtained.
type ArtifactOutcome string

const (
	// OutcomeDownloaded means the file was fetched from the registry.
	OutcomeDownloaded ArtifactOutcome = "downloaded"
	// OutcomeReused means an existing local file was verified.
	OutcomeReused ArtifactOutcome = "reused"
	// OutcomeDescribed means the record was built from metadata only.
	OutcomeDescribed ArtifactOutcome = "described"
)

// WarningReason classifies a soft failure that did not abort the run.
type WarningReason string

const (
	WarningNoCompatibleVersion WarningReason = "no_compatible_version"
	WarningMissingDependencyID WarningReason = "missing_dependency_id"
	WarningCompatibility       WarningReason = "compatibility"
	WarningContentLength       WarningReason = "content_length"
	WarningLockfileDiscarded   WarningReason = "lockfile_discarded"
	WarningLockfileUnreadable  WarningReason = "lockfile_unreadable"
	WarningLockfileWriteFailed WarningReason = "lockfile_write_failed"
)
