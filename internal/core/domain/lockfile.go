package domain

import "fmt"

// Artifact is one verified file recorded in the lockfile.
// Checksum is the lower-case hex SHA-512 digest of the file.
type Artifact struct {
	ProjectID     string
	ProjectSlug   string
	VersionID     string
	VersionNumber string
	Filename      string
	Checksum      string
}

// String renders the artifact as project/version/filename.
func (a Artifact) String() string {
	return fmt.Sprintf("%s/%s/%s", a.ProjectID, a.VersionID, a.Filename)
}

// Lockfile is the persisted result of the last successful resolution.
type Lockfile struct {
	Datapack []Artifact
	Fabric   []Artifact
}

// Artifacts returns the lock entries of the given loader.
func (l *Lockfile) Artifacts(loader Loader) []Artifact {
	switch loader {
	case LoaderDatapack:
		return l.Datapack
	case LoaderFabric:
		return l.Fabric
	default:
		return nil
	}
}

// SetArtifacts replaces the lock entries of the given loader.
func (l *Lockfile) SetArtifacts(loader Loader, artifacts []Artifact) {
	switch loader {
	case LoaderDatapack:
		l.Datapack = artifacts
	case LoaderFabric:
		l.Fabric = artifacts
	}
}

// IsEmpty reports whether the lockfile has no entries at all.
func (l *Lockfile) IsEmpty() bool {
	return len(l.Datapack) == 0 && len(l.Fabric) == 0
}

// Index builds the lock pin index of the given loader.
func (l *Lockfile) Index(loader Loader) LockIndex {
	artifacts := l.Artifacts(loader)
	idx := LockIndex{pairs: make(map[ResolvedKey]struct{}, len(artifacts))}
	for _, a := range artifacts {
		idx.pairs[ResolvedKey{ProjectID: a.ProjectID, VersionID: a.VersionID}] = struct{}{}
	}
	return idx
}

// UpToDate reports whether every manifest entry of the loader is represented
// in the lockfile: its name matches a locked project id or slug, and a pinned
// version matches a locked version id or number.
func (l *Lockfile) UpToDate(manifest *Manifest, loader Loader) bool {
	artifacts := l.Artifacts(loader)
	projects := make(map[string]struct{}, 2*len(artifacts))
	versions := make(map[string]struct{}, 2*len(artifacts))
	for _, a := range artifacts {
		projects[a.ProjectID] = struct{}{}
		projects[a.ProjectSlug] = struct{}{}
		versions[a.VersionID] = struct{}{}
		versions[a.VersionNumber] = struct{}{}
	}

	for name, spec := range manifest.Section(loader) {
		if _, ok := projects[name]; !ok {
			return false
		}
		if pin, pinned := spec.Pin(); pinned {
			if _, ok := versions[pin]; !ok {
				return false
			}
		}
	}
	return true
}

// ValidateLockfile returns the lockfile unchanged when every loader is up to
// date with the manifest, and an empty lockfile otherwise. Stale sections are
// never reused partially.
func ValidateLockfile(manifest *Manifest, lock *Lockfile) (Lockfile, bool) {
	for _, loader := range Loaders() {
		if !lock.UpToDate(manifest, loader) {
			return Lockfile{}, false
		}
	}
	return *lock, true
}

// LockIndex is the set of locked (project id, version id) pairs of one loader.
// An empty index accepts every pair.
type LockIndex struct {
	pairs map[ResolvedKey]struct{}
}

// Contains reports whether the pair is locked, or true when the index is empty.
func (i LockIndex) Contains(projectID, versionID string) bool {
	if len(i.pairs) == 0 {
		return true
	}
	_, ok := i.pairs[ResolvedKey{ProjectID: projectID, VersionID: versionID}]
	return ok
}

// Len returns the number of locked pairs.
func (i LockIndex) Len() int {
	return len(i.pairs)
}
