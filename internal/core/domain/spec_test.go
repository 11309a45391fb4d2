package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/core/domain"
)

func TestParseProjectSpec(t *testing.T) {
	tests := []struct {
		name       string
		raw        any
		wantPin    string
		wantPinned bool
		wantErr    bool
	}{
		{name: "wildcard marker", raw: "*", wantPinned: false},
		{name: "bare version", raw: "0.13.0", wantPin: "0.13.0", wantPinned: true},
		{name: "version id", raw: "AbCdEf12", wantPin: "AbCdEf12", wantPinned: true},
		{name: "table", raw: map[string]any{"version": "1.2.3"}, wantPin: "1.2.3", wantPinned: true},
		{name: "yaml style table", raw: map[any]any{"version": "1.2.3"}, wantPin: "1.2.3", wantPinned: true},
		{name: "table pins wildcard literally", raw: map[string]any{"version": "*"}, wantPin: "*", wantPinned: true},
		{name: "empty string", raw: "", wantErr: true},
		{name: "table without version", raw: map[string]any{"ver": "1"}, wantErr: true},
		{name: "table with numeric version", raw: map[string]any{"version": int64(1)}, wantErr: true},
		{name: "number", raw: 1.5, wantErr: true},
		{name: "nil", raw: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseProjectSpec(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrInvalidProjectSpec.Error())
				return
			}
			require.NoError(t, err)
			pin, pinned := spec.Pin()
			assert.Equal(t, tt.wantPinned, pinned)
			assert.Equal(t, tt.wantPin, pin)
			assert.Equal(t, !tt.wantPinned, spec.IsWildcard())
		})
	}
}

func TestProjectSpec_Accepts(t *testing.T) {
	v := &domain.RegistryVersion{ID: "AbCdEf12", VersionNumber: "1.0.0"}

	assert.True(t, domain.Wildcard().Accepts(v))
	assert.True(t, domain.Pinned("1.0.0").Accepts(v))
	assert.True(t, domain.Pinned("AbCdEf12").Accepts(v))
	assert.False(t, domain.Pinned("1.0.1").Accepts(v))
}

func TestProjectSpec_ZeroValueIsWildcard(t *testing.T) {
	var spec domain.ProjectSpec
	assert.True(t, spec.IsWildcard())
	assert.Equal(t, "*", spec.String())
	assert.Equal(t, "1.0", domain.Pinned("1.0").String())
}

func TestLoader(t *testing.T) {
	assert.Equal(t, []domain.Loader{domain.LoaderDatapack, domain.LoaderFabric}, domain.Loaders())
	assert.Equal(t, "datapack", domain.LoaderDatapack.String())
	assert.Equal(t, "fabric", domain.LoaderFabric.String())
	assert.True(t, domain.LoaderFabric.Matches("fabric"))
	assert.False(t, domain.LoaderFabric.Matches("quilt"))
	assert.False(t, domain.LoaderDatapack.Matches("fabric"))
}

func TestManifest_EntriesAreSortedByName(t *testing.T) {
	m := domain.NewManifest(nil, []string{"sodium", "fabric-api", "lithium"})
	m.Fabric["lithium"] = domain.Pinned("0.13.0")

	entries := m.Entries(domain.LoaderFabric)
	require.Len(t, entries, 3)
	assert.Equal(t, "fabric-api", entries[0].Name)
	assert.Equal(t, "lithium", entries[1].Name)
	assert.Equal(t, "sodium", entries[2].Name)
	assert.Equal(t, domain.Pinned("0.13.0"), entries[1].Spec)

	assert.Empty(t, m.Entries(domain.LoaderDatapack))
	assert.False(t, m.IsEmpty())
}

func TestDenylist(t *testing.T) {
	d := domain.DefaultDenylist("banned")

	assert.True(t, d.Contains("qsl"))
	assert.True(t, d.Contains("qvIfYCYJ"))
	assert.True(t, d.Contains("banned"))
	assert.False(t, d.Contains("sodium"))

	assert.True(t, d.Denies(&domain.RegistryProject{ID: "x", Slug: "qsl"}))
	assert.True(t, d.Denies(&domain.RegistryProject{ID: "qvIfYCYJ", Slug: "y"}))
	assert.False(t, domain.NewDenylist().Denies(&domain.RegistryProject{ID: "qsl", Slug: "qsl"}))
}

func TestParseSupport(t *testing.T) {
	assert.Equal(t, domain.SupportRequired, domain.ParseSupport("required"))
	assert.Equal(t, domain.SupportOptional, domain.ParseSupport("optional"))
	assert.Equal(t, domain.SupportUnsupported, domain.ParseSupport("unsupported"))
	assert.Equal(t, domain.SupportUnknown, domain.ParseSupport("unknown"))
	assert.Equal(t, domain.SupportUnknown, domain.ParseSupport("something-new"))
}

func TestRegistryVersion_Helpers(t *testing.T) {
	v := &domain.RegistryVersion{
		Loaders: []string{"fabric", "quilt"},
		Files: []domain.RegistryFile{
			{Filename: "a.jar", Primary: true},
			{Filename: "a-sources.jar"},
		},
		Dependencies: []domain.Dependency{
			{ProjectID: "P1", Kind: domain.DependencyRequired},
			{ProjectID: "P2", Kind: domain.DependencyOptional},
			{ProjectID: "P3", Kind: domain.DependencyEmbedded},
			{ProjectID: "P4", Kind: domain.DependencyIncompatible},
		},
	}

	assert.True(t, v.SupportsLoader(domain.LoaderFabric))
	assert.False(t, v.SupportsLoader(domain.LoaderDatapack))

	primary := v.PrimaryFiles()
	require.Len(t, primary, 1)
	assert.Equal(t, "a.jar", primary[0].Filename)

	required := v.RequiredDependencies()
	require.Len(t, required, 1)
	assert.Equal(t, "P1", required[0].ProjectID)
}
