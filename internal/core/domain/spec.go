package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// WildcardMarker is the manifest value accepting any version.
const WildcardMarker = "*"

// ProjectSpec is the version pin of a manifest entry.
// The zero value is the wildcard.
type ProjectSpec struct {
	pin    string
	pinned bool
}

// Wildcard returns a spec accepting every version.
func Wildcard() ProjectSpec {
	return ProjectSpec{}
}

// Pinned returns a spec accepting only versions whose number or id equals pin.
func Pinned(pin string) ProjectSpec {
	return ProjectSpec{pin: pin, pinned: true}
}

// Pin returns the pinned string and whether the spec is pinned at all.
func (s ProjectSpec) Pin() (string, bool) {
	return s.pin, s.pinned
}

// IsWildcard reports whether the spec accepts every version.
func (s ProjectSpec) IsWildcard() bool {
	return !s.pinned
}

// Accepts reports whether a version satisfies the pin.
func (s ProjectSpec) Accepts(v *RegistryVersion) bool {
	if !s.pinned {
		return true
	}
	return v.VersionNumber == s.pin || v.ID == s.pin
}

// String renders the spec the way it is written in a manifest.
func (s ProjectSpec) String() string {
	if !s.pinned {
		return WildcardMarker
	}
	return s.pin
}

// ParseProjectSpec normalizes a decoded manifest value into a ProjectSpec.
// Accepted shapes are the wildcard marker "*", a bare version string, or a
// table holding a "version" string.
func ParseProjectSpec(raw any) (ProjectSpec, error) {
	switch v := raw.(type) {
	case string:
		return parsePinString(v)
	case map[string]any:
		return parsePinTable(v["version"])
	case map[any]any:
		return parsePinTable(v["version"])
	default:
		return ProjectSpec{}, zerr.With(ErrInvalidProjectSpec, "value", fmt.Sprintf("%v", raw))
	}
}

func parsePinString(s string) (ProjectSpec, error) {
	switch s {
	case WildcardMarker:
		return Wildcard(), nil
	case "":
		return ProjectSpec{}, zerr.With(ErrInvalidProjectSpec, "value", s)
	default:
		return Pinned(s), nil
	}
}

// A table always pins, even to "*".
func parsePinTable(raw any) (ProjectSpec, error) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return ProjectSpec{}, zerr.With(ErrInvalidProjectSpec, "version", fmt.Sprintf("%v", raw))
	}
	return Pinned(s), nil
}
