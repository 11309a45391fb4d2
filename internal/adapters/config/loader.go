// Package config provides manifest and lockfile persistence for modlock.
package config

import (
	"fmt"
	"os"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ManifestLoader for TOML and YAML manifests.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the manifest at path. Missing sections are empty.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var raw manifestFile
	if err := format.unmarshal(data, &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}

	manifest := &domain.Manifest{}
	sections := map[domain.Loader]map[string]any{
		domain.LoaderDatapack: raw.Datapack,
		domain.LoaderFabric:   raw.Fabric,
	}
	for _, loader := range domain.Loaders() {
		section, err := parseSection(loader, sections[loader])
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		manifest.SetSection(loader, section)
	}

	if l.Logger != nil {
		l.Logger.Debug(fmt.Sprintf("loaded manifest %s with %d datapack and %d fabric projects",
			path, len(manifest.Datapack), len(manifest.Fabric)))
	}

	return manifest, nil
}

func parseSection(loader domain.Loader, raw map[string]any) (map[string]domain.ProjectSpec, error) {
	section := make(map[string]domain.ProjectSpec, len(raw))
	for name, value := range raw {
		spec, err := domain.ParseProjectSpec(value)
		if err != nil {
			err = zerr.With(err, "project", name)
			return nil, zerr.With(err, "loader", loader.String())
		}
		section[name] = spec
	}
	return section, nil
}
