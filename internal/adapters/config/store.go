package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockfileStore for TOML and YAML lockfiles.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the lockfile at path. A missing file yields an empty lockfile.
func (s *Store) Load(path string) (*domain.Lockfile, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.Lockfile{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", path)
	}

	var raw lockFile
	if err := format.unmarshal(data, &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	return &domain.Lockfile{
		Datapack: toArtifacts(raw.Datapack),
		Fabric:   toArtifacts(raw.Fabric),
	}, nil
}

// Save writes the lockfile to path atomically.
func (s *Store) Save(path string, lock *domain.Lockfile) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := format.marshal(lockFile{
		Datapack: fromArtifacts(lock.Datapack),
		Fabric:   fromArtifacts(lock.Fabric),
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockfileMarshalFailed.Error())
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "path", path)
	}
	return nil
}

func toArtifacts(dtos []ArtifactDTO) []domain.Artifact {
	if len(dtos) == 0 {
		return nil
	}
	out := make([]domain.Artifact, len(dtos))
	for i, d := range dtos {
		out[i] = domain.Artifact(d)
	}
	return out
}

func fromArtifacts(artifacts []domain.Artifact) []ArtifactDTO {
	out := make([]ArtifactDTO, len(artifacts))
	for i, a := range artifacts {
		out[i] = ArtifactDTO(a)
	}
	return out
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".modlock-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
