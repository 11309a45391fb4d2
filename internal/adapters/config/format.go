package config

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for manifests and lockfiles.
type Format string

const (
	// FormatTOML is the default format.
	FormatTOML Format = "toml"
	// FormatYAML is selected by a .yaml or .yml extension.
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension.
// Files without an extension, .toml and .lock files are TOML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".toml", ".lock":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "cannot pick a file format"), "path", path)
	}
}

func (f Format) unmarshal(data []byte, v any) error {
	if f == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return toml.Unmarshal(data, v)
}

func (f Format) marshal(v any) ([]byte, error) {
	if f == FormatYAML {
		return yaml.Marshal(v)
	}
	return toml.Marshal(v)
}
