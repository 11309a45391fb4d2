package domain

// defaultDenied lists projects that can never be installed.
// The quilted fabric API conflicts with fabric API.
var defaultDenied = []string{"qsl", "qvIfYCYJ"}

// Denylist is an immutable set of banned project ids and slugs.
type Denylist struct {
	entries map[string]struct{}
}

// NewDenylist creates a denylist from project ids and slugs.
func NewDenylist(entries ...string) Denylist {
	d := Denylist{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if e != "" {
			d.entries[e] = struct{}{}
		}
	}
	return d
}

// DefaultDenylist returns the built-in denylist extended by extra entries.
func DefaultDenylist(extra ...string) Denylist {
	return NewDenylist(append(append([]string{}, defaultDenied...), extra...)...)
}

// Contains reports whether the id or slug is banned.
func (d Denylist) Contains(v string) bool {
	_, ok := d.entries[v]
	return ok
}

// Denies reports whether the project is banned by id or slug.
func (d Denylist) Denies(p *RegistryProject) bool {
	return d.Contains(p.ID) || d.Contains(p.Slug)
}
