package modrinth

import "go.trai.ch/modlock/internal/core/domain"

// ToDomainForTest exports the private version conversion for testing purposes.
func (v *VersionResponse) ToDomainForTest() domain.RegistryVersion {
	return v.toDomain()
}
