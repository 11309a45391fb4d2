package domain

import "fmt"

// Loader is the platform a piece of content targets.
type Loader uint8

const (
	// LoaderDatapack denotes server-side data content.
	LoaderDatapack Loader = iota
	// LoaderFabric denotes Fabric mod binaries.
	LoaderFabric
)

// Loaders returns every loader in processing order.
func Loaders() []Loader {
	return []Loader{LoaderDatapack, LoaderFabric}
}

// String returns the registry tag of the loader.
func (l Loader) String() string {
	switch l {
	case LoaderDatapack:
		return "datapack"
	case LoaderFabric:
		return "fabric"
	default:
		return fmt.Sprintf("loader(%d)", uint8(l))
	}
}

// Matches reports whether a registry loader tag denotes this loader.
func (l Loader) Matches(tag string) bool {
	return tag == l.String()
}
