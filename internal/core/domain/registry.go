package domain

import "time"

// Support describes whether a project must, may or cannot be installed on one side.
type Support uint8

const (
	// SupportUnknown means the project did not declare its requirements.
	SupportUnknown Support = iota
	// SupportRequired means the project must be installed on that side.
	SupportRequired
	// SupportOptional means the project may be installed on that side.
	SupportOptional
	// SupportUnsupported means the project cannot be installed on that side.
	SupportUnsupported
)

// ParseSupport converts a registry support tag. Unrecognized tags map to SupportUnknown.
func ParseSupport(tag string) Support {
	switch tag {
	case "required":
		return SupportRequired
	case "optional":
		return SupportOptional
	case "unsupported":
		return SupportUnsupported
	default:
		return SupportUnknown
	}
}

// String returns the registry tag of the support level.
func (s Support) String() string {
	switch s {
	case SupportRequired:
		return "required"
	case SupportOptional:
		return "optional"
	case SupportUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// DependencyKind classifies a version dependency.
type DependencyKind uint8

const (
	// DependencyRequired must be installed alongside the dependent version.
	DependencyRequired DependencyKind = iota
	// DependencyOptional may be installed alongside the dependent version.
	DependencyOptional
	// DependencyIncompatible must not be installed alongside the dependent version.
	DependencyIncompatible
	// DependencyEmbedded is shipped inside the dependent version.
	DependencyEmbedded
)

// ParseDependencyKind converts a registry dependency tag.
func ParseDependencyKind(tag string) (DependencyKind, bool) {
	switch tag {
	case "required":
		return DependencyRequired, true
	case "optional":
		return DependencyOptional, true
	case "incompatible":
		return DependencyIncompatible, true
	case "embedded":
		return DependencyEmbedded, true
	default:
		return DependencyOptional, false
	}
}

// String returns the registry tag of the dependency kind.
func (k DependencyKind) String() string {
	switch k {
	case DependencyRequired:
		return "required"
	case DependencyOptional:
		return "optional"
	case DependencyIncompatible:
		return "incompatible"
	default:
		return "embedded"
	}
}

// RegistryProject is the project metadata relevant to resolution.
type RegistryProject struct {
	ID            string
	Slug          string
	ClientSupport Support
	ServerSupport Support
}

// RegistryFile is one downloadable file of a version.
// SHA512 is the declared lower-case hex digest, empty when the registry omitted it.
type RegistryFile struct {
	Filename string
	URL      string
	SHA512   string
	Primary  bool
}

// Dependency references another project, optionally pinned to one of its versions.
type Dependency struct {
	ProjectID string
	VersionID string
	Kind      DependencyKind
}

// RegistryVersion is one published version of a project.
type RegistryVersion struct {
	ID            string
	ProjectID     string
	VersionNumber string
	PublishedAt   time.Time
	Loaders       []string
	Files         []RegistryFile
	Dependencies  []Dependency
}

// SupportsLoader reports whether the version lists the given loader.
func (v *RegistryVersion) SupportsLoader(loader Loader) bool {
	for _, tag := range v.Loaders {
		if loader.Matches(tag) {
			return true
		}
	}
	return false
}

// PrimaryFiles returns the files marked primary, in registry order.
func (v *RegistryVersion) PrimaryFiles() []RegistryFile {
	var files []RegistryFile
	for _, f := range v.Files {
		if f.Primary {
			files = append(files, f)
		}
	}
	return files
}

// RequiredDependencies returns the dependencies that participate in the closure.
func (v *RegistryVersion) RequiredDependencies() []Dependency {
	var deps []Dependency
	for _, d := range v.Dependencies {
		if d.Kind == DependencyRequired {
			deps = append(deps, d)
		}
	}
	return deps
}

// ResolvedKey identifies one resolved (project, version) pair.
type ResolvedKey struct {
	ProjectID string
	VersionID string
}

// Resolved is a project together with the version selected for it.
type Resolved struct {
	Project RegistryProject
	Version RegistryVersion
}

// Key returns the deduplication key of the pair.
func (r *Resolved) Key() ResolvedKey {
	return ResolvedKey{ProjectID: r.Project.ID, VersionID: r.Version.ID}
}
