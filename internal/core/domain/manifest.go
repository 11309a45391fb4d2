package domain

import (
	"slices"
	"strings"
)

// ManifestEntry is one declared project of a loader section.
type ManifestEntry struct {
	Name string
	Spec ProjectSpec
}

// Manifest is the declared set of projects per loader.
type Manifest struct {
	Datapack map[string]ProjectSpec
	Fabric   map[string]ProjectSpec
}

// NewManifest creates a manifest with wildcard specs for the given project names.
func NewManifest(datapack, fabric []string) Manifest {
	m := Manifest{
		Datapack: make(map[string]ProjectSpec, len(datapack)),
		Fabric:   make(map[string]ProjectSpec, len(fabric)),
	}
	for _, name := range datapack {
		m.Datapack[name] = Wildcard()
	}
	for _, name := range fabric {
		m.Fabric[name] = Wildcard()
	}
	return m
}

// Section returns the raw mapping of the given loader.
func (m *Manifest) Section(loader Loader) map[string]ProjectSpec {
	switch loader {
	case LoaderDatapack:
		return m.Datapack
	case LoaderFabric:
		return m.Fabric
	default:
		return nil
	}
}

// SetSection replaces the mapping of the given loader.
func (m *Manifest) SetSection(loader Loader, section map[string]ProjectSpec) {
	switch loader {
	case LoaderDatapack:
		m.Datapack = section
	case LoaderFabric:
		m.Fabric = section
	}
}

// Entries returns the entries of the given loader ordered by project name.
func (m *Manifest) Entries(loader Loader) []ManifestEntry {
	section := m.Section(loader)
	entries := make([]ManifestEntry, 0, len(section))
	for name, spec := range section {
		entries = append(entries, ManifestEntry{Name: name, Spec: spec})
	}
	slices.SortFunc(entries, func(a, b ManifestEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}

// IsEmpty reports whether no loader declares any project.
func (m *Manifest) IsEmpty() bool {
	return len(m.Datapack) == 0 && len(m.Fabric) == 0
}
