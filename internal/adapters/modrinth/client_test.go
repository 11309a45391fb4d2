package modrinth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modlock/internal/adapters/modrinth"
	"go.trai.ch/modlock/internal/core/domain"
)

const testBaseURL = "https://api.test"

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) *http.Response
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req), nil
}

func newMockClient(handler func(req *http.Request) *http.Response) *http.Client {
	return &http.Client{
		Transport: &MockRoundTripper{RoundTripFunc: handler},
	}
}

func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBuffer(body)),
		Header:     make(http.Header),
	}
}

func statusResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString("")),
		Header:     make(http.Header),
	}
}

func newClient(t *testing.T, handler func(req *http.Request) *http.Response) *modrinth.Client {
	t.Helper()
	c, err := modrinth.NewClient(testBaseURL,
		modrinth.WithToken("secret"),
		modrinth.WithUserAgent("modlock/test"),
		modrinth.WithHTTPClient(newMockClient(handler)),
	)
	require.NoError(t, err)
	return c
}

func TestNewClient_KnownHosts(t *testing.T) {
	for _, raw := range []string{modrinth.ProductionURL, modrinth.StagingURL} {
		c, err := modrinth.NewClient(raw)
		require.NoError(t, err, raw)
		assert.NotNil(t, c)
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "api.modrinth.com", "ftp://api.modrinth.com", "://bad"} {
		_, err := modrinth.NewClient(raw)
		require.Error(t, err, raw)
		assert.ErrorContains(t, err, domain.ErrInvalidRegistryURL.Error())
	}
}

func TestClient_Project(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var seen *http.Request
		c := newClient(t, func(req *http.Request) *http.Response {
			seen = req
			if req.URL.String() == testBaseURL+"/v2/project/sodium" {
				return jsonResponse(t, http.StatusOK, modrinth.ProjectResponse{
					ID: "AANobbMI", Slug: "sodium", ClientSide: "required", ServerSide: "unsupported",
				})
			}
			return statusResponse(http.StatusNotFound)
		})

		p, err := c.Project(context.Background(), "sodium")
		require.NoError(t, err)
		assert.Equal(t, &domain.RegistryProject{
			ID:            "AANobbMI",
			Slug:          "sodium",
			ClientSupport: domain.SupportRequired,
			ServerSupport: domain.SupportUnsupported,
		}, p)

		require.NotNil(t, seen)
		assert.Equal(t, "modlock/test", seen.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer secret", seen.Header.Get("Authorization"))
		assert.Equal(t, "application/json", seen.Header.Get("Accept"))
	})

	t.Run("NotFound", func(t *testing.T) {
		c := newClient(t, func(_ *http.Request) *http.Response {
			return statusResponse(http.StatusNotFound)
		})

		_, err := c.Project(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrProjectNotFound.Error())
		assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
	})

	t.Run("ServerError", func(t *testing.T) {
		c := newClient(t, func(_ *http.Request) *http.Response {
			return statusResponse(http.StatusInternalServerError)
		})

		_, err := c.Project(context.Background(), "sodium")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrRegistryRequestFailed.Error())
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		c := newClient(t, func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{not json")),
				Header:     make(http.Header),
			}
		})

		_, err := c.Project(context.Background(), "sodium")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrRegistryResponseInvalid.Error())
	})
}

func TestClient_Version(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newClient(t, func(req *http.Request) *http.Response {
			if req.URL.Path == "/v2/project/P/version/V" {
				return jsonResponse(t, http.StatusOK, modrinth.VersionResponse{
					ID: "V", ProjectID: "P", VersionNumber: "1.0.0", Loaders: []string{"fabric"},
				})
			}
			return statusResponse(http.StatusNotFound)
		})

		v, err := c.Version(context.Background(), "P", "V")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", v.VersionNumber)
		assert.Equal(t, "P", v.ProjectID)
	})

	t.Run("NotFound", func(t *testing.T) {
		c := newClient(t, func(_ *http.Request) *http.Response {
			return statusResponse(http.StatusNotFound)
		})

		_, err := c.Version(context.Background(), "P", "gone")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrVersionNotFound.Error())
		assert.True(t, errors.Is(err, domain.ErrVersionNotFound))
	})
}

func TestClient_Versions(t *testing.T) {
	published := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	var query string

	c := newClient(t, func(req *http.Request) *http.Response {
		if req.URL.Path != "/v2/project/P/version" {
			return statusResponse(http.StatusNotFound)
		}
		query = req.URL.RawQuery
		return jsonResponse(t, http.StatusOK, []modrinth.VersionResponse{
			{ID: "q1", ProjectID: "P", Loaders: []string{"quilt"}, DatePublished: published},
			{ID: "f1", ProjectID: "P", Loaders: []string{"fabric", "quilt"}, DatePublished: published},
		})
	})

	versions, err := c.Versions(context.Background(), "P", domain.LoaderFabric, "1.21.1")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "f1", versions[0].ID)
	assert.True(t, published.Equal(versions[0].PublishedAt))
	assert.Equal(t, "game_versions=%5B%221.21.1%22%5D&loaders=%5B%22fabric%22%5D", query)
}

func TestClient_Versions_UnknownProject(t *testing.T) {
	c := newClient(t, func(_ *http.Request) *http.Response {
		return statusResponse(http.StatusNotFound)
	})

	_, err := c.Versions(context.Background(), "nope", domain.LoaderDatapack, "1.21.1")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrProjectNotFound.Error())
}

func TestVersionResponse_ToDomain(t *testing.T) {
	pid := "DEP"
	vid := "DEPV"
	resp := modrinth.VersionResponse{
		ID:            "V",
		ProjectID:     "P",
		VersionNumber: "2.0",
		Loaders:       []string{"fabric"},
		Files: []modrinth.FileResponse{
			{Filename: "a.jar", URL: "https://cdn.test/a.jar", Primary: true, Hashes: map[string]string{"sha512": "abc", "sha1": "def"}},
			{Filename: "a-sources.jar", URL: "https://cdn.test/a-sources.jar", Hashes: map[string]string{}},
		},
		Dependencies: []modrinth.DependencyResponse{
			{ProjectID: &pid, VersionID: &vid, DependencyType: "required"},
			{ProjectID: &pid, DependencyType: "optional"},
			{DependencyType: "something-new"},
		},
	}

	v := resp.ToDomainForTest()
	require.Len(t, v.Files, 2)
	assert.Equal(t, domain.RegistryFile{Filename: "a.jar", URL: "https://cdn.test/a.jar", SHA512: "abc", Primary: true}, v.Files[0])
	assert.Empty(t, v.Files[1].SHA512)

	require.Len(t, v.Dependencies, 2)
	assert.Equal(t, domain.Dependency{ProjectID: "DEP", VersionID: "DEPV", Kind: domain.DependencyRequired}, v.Dependencies[0])
	assert.Equal(t, domain.Dependency{ProjectID: "DEP", Kind: domain.DependencyOptional}, v.Dependencies[1])
}

func TestClient_Download(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var seen *http.Request
		c := newClient(t, func(req *http.Request) *http.Response {
			seen = req
			resp := statusResponse(http.StatusOK)
			resp.Header.Set("Content-Type", "application/java-archive")
			resp.Body = io.NopCloser(bytes.NewBufferString("jar-bytes"))
			resp.ContentLength = 9
			return resp
		})

		dl, err := c.Download(context.Background(), "https://cdn.test/data/a.jar")
		require.NoError(t, err)
		defer func() { _ = dl.Body.Close() }()

		assert.Equal(t, "application/java-archive", dl.ContentType)
		assert.Equal(t, int64(9), dl.ContentLength)
		body, err := io.ReadAll(dl.Body)
		require.NoError(t, err)
		assert.Equal(t, "jar-bytes", string(body))

		require.NotNil(t, seen)
		assert.Empty(t, seen.Header.Get("Authorization"), "token must not leave the API host")
		assert.Empty(t, seen.Header.Get("Accept"))
		assert.Equal(t, "modlock/test", seen.Header.Get("User-Agent"))
	})

	t.Run("BadStatus", func(t *testing.T) {
		c := newClient(t, func(_ *http.Request) *http.Response {
			return statusResponse(http.StatusForbidden)
		})

		_, err := c.Download(context.Background(), "https://cdn.test/data/a.jar")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrDownloadFailed.Error())
	})
}
