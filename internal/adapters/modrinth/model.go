package modrinth

import (
	"time"

	"go.trai.ch/modlock/internal/core/domain"
)

// ProjectResponse is the subset of GET /v2/project/{id} used by modlock.
type ProjectResponse struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	ClientSide string `json:"client_side"`
	ServerSide string `json:"server_side"`
}

// VersionResponse is one element of the version endpoints.
type VersionResponse struct {
	ID            string               `json:"id"`
	ProjectID     string               `json:"project_id"`
	VersionNumber string               `json:"version_number"`
	DatePublished time.Time            `json:"date_published"`
	Loaders       []string             `json:"loaders"`
	GameVersions  []string             `json:"game_versions"`
	Files         []FileResponse       `json:"files"`
	Dependencies  []DependencyResponse `json:"dependencies"`
}

// FileResponse is one file of a version.
type FileResponse struct {
	Hashes   map[string]string `json:"hashes"`
	URL      string            `json:"url"`
	Filename string            `json:"filename"`
	Primary  bool              `json:"primary"`
	Size     int64             `json:"size"`
}

// DependencyResponse is one dependency of a version.
type DependencyResponse struct {
	VersionID      *string `json:"version_id"`
	ProjectID      *string `json:"project_id"`
	FileName       *string `json:"file_name"`
	DependencyType string  `json:"dependency_type"`
}

func (p *ProjectResponse) toDomain() *domain.RegistryProject {
	return &domain.RegistryProject{
		ID:            p.ID,
		Slug:          p.Slug,
		ClientSupport: domain.ParseSupport(p.ClientSide),
		ServerSupport: domain.ParseSupport(p.ServerSide),
	}
}

func (v *VersionResponse) toDomain() domain.RegistryVersion {
	out := domain.RegistryVersion{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		VersionNumber: v.VersionNumber,
		PublishedAt:   v.DatePublished,
		Loaders:       v.Loaders,
		Files:         make([]domain.RegistryFile, 0, len(v.Files)),
	}

	for _, f := range v.Files {
		out.Files = append(out.Files, domain.RegistryFile{
			Filename: f.Filename,
			URL:      f.URL,
			SHA512:   f.Hashes["sha512"],
			Primary:  f.Primary,
		})
	}

	for _, d := range v.Dependencies {
		kind, ok := domain.ParseDependencyKind(d.DependencyType)
		if !ok {
			continue
		}
		out.Dependencies = append(out.Dependencies, domain.Dependency{
			ProjectID: deref(d.ProjectID),
			VersionID: deref(d.VersionID),
			Kind:      kind,
		})
	}

	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
