package domain

import "path/filepath"

const (
	// ManifestFileName is the default name of the manifest file.
	ManifestFileName = "Modrinth.toml"

	// LockfileFileName is the default name of the lockfile.
	LockfileFileName = "Modrinth.lock"

	// DefaultGameVersion is the game version used when neither a flag nor MINECRAFT_VERSION is set.
	DefaultGameVersion = "1.21.1"

	// GameVersionEnv names the environment variable supplying the default game version.
	GameVersionEnv = "MINECRAFT_VERSION"

	// APITokenEnv names the environment variable supplying the optional registry bearer token.
	APITokenEnv = "MODRINTH_PAT"

	// APIURLEnv names the environment variable overriding the registry base URL.
	APIURLEnv = "MODRINTH_API_URL"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// LoaderOutputPath returns the directory artifacts of the given loader are stored in.
func LoaderOutputPath(output string, loader Loader) string {
	return filepath.Join(output, loader.String())
}
