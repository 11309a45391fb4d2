package config

// manifestFile represents the structure of the Modrinth.toml manifest.
// Section values are normalized by domain.ParseProjectSpec.
type manifestFile struct {
	Datapack map[string]any `toml:"datapack" yaml:"datapack"`
	Fabric   map[string]any `toml:"fabric" yaml:"fabric"`
}

// lockFile represents the structure of the Modrinth.lock lockfile.
type lockFile struct {
	Datapack []ArtifactDTO `toml:"datapack" yaml:"datapack"`
	Fabric   []ArtifactDTO `toml:"fabric" yaml:"fabric"`
}

// ArtifactDTO represents one lock entry in the lockfile.
type ArtifactDTO struct {
	ProjectID     string `toml:"project_id" yaml:"project_id"`
	ProjectSlug   string `toml:"project_slug" yaml:"project_slug"`
	VersionID     string `toml:"version_id" yaml:"version_id"`
	VersionNumber string `toml:"version_number" yaml:"version_number"`
	Filename      string `toml:"filename" yaml:"filename"`
	Checksum      string `toml:"checksum" yaml:"checksum"`
}
