package domain

// SelectVersion picks the version to install from candidates that already
// match the loader and game version.
//
// Candidates must satisfy the spec pin and be present in the lock index.
// The most recently published one wins; among equal publication times the
// last in registry order is chosen. It returns false when nothing remains.
func SelectVersion(candidates []RegistryVersion, spec ProjectSpec, lock LockIndex) (RegistryVersion, bool) {
	best := -1
	for i := range candidates {
		v := &candidates[i]
		if !spec.Accepts(v) || !lock.Contains(v.ProjectID, v.ID) {
			continue
		}
		if best < 0 || !v.PublishedAt.Before(candidates[best].PublishedAt) {
			best = i
		}
	}
	if best < 0 {
		return RegistryVersion{}, false
	}
	return candidates[best], true
}
