// Package modrinth implements the registry and downloader ports against the Modrinth v2 API.
package modrinth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// ProductionURL is the default API base URL.
	ProductionURL = "https://api.modrinth.com"
	// StagingURL is the staging API base URL.
	StagingURL = "https://staging-api.modrinth.com"

	httpClientTimeout = 5 * time.Minute
)

// Client implements ports.Registry and ports.Downloader over HTTP.
type Client struct {
	baseURL    *url.URL
	token      string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent to the API host.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidRegistryURL.Error()), "url", baseURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, zerr.With(domain.ErrInvalidRegistryURL, "url", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: httpClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Project looks up a project by id or slug.
func (c *Client) Project(ctx context.Context, idOrSlug string) (*domain.RegistryProject, error) {
	var resp ProjectResponse
	err := c.getJSON(ctx, c.endpoint(nil, "v2", "project", idOrSlug), &resp)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, zerr.With(notFound(domain.ErrProjectNotFound), "project", idOrSlug)
		}
		return nil, zerr.With(err, "project", idOrSlug)
	}
	return resp.toDomain(), nil
}

// Version looks up a single version of a project.
func (c *Client) Version(ctx context.Context, projectID, versionID string) (*domain.RegistryVersion, error) {
	var resp VersionResponse
	err := c.getJSON(ctx, c.endpoint(nil, "v2", "project", projectID, "version", versionID), &resp)
	if err != nil {
		if errors.Is(err, errNotFound) {
			err = zerr.With(notFound(domain.ErrVersionNotFound), "project", projectID)
			return nil, zerr.With(err, "version", versionID)
		}
		return nil, zerr.With(err, "project", projectID)
	}
	v := resp.toDomain()
	return &v, nil
}

// Versions lists the versions of a project for a loader and game version.
// The registry filter is repeated client-side on the loader.
func (c *Client) Versions(
	ctx context.Context, projectID string, loader domain.Loader, gameVersion string,
) ([]domain.RegistryVersion, error) {
	query := url.Values{}
	query.Set("loaders", jsonList(loader.String()))
	query.Set("game_versions", jsonList(gameVersion))

	var resp []VersionResponse
	err := c.getJSON(ctx, c.endpoint(query, "v2", "project", projectID, "version"), &resp)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, zerr.With(notFound(domain.ErrProjectNotFound), "project", projectID)
		}
		return nil, zerr.With(err, "project", projectID)
	}

	versions := make([]domain.RegistryVersion, 0, len(resp))
	for i := range resp {
		v := resp[i].toDomain()
		if v.SupportsLoader(loader) {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// Download issues a GET request for an artifact file.
// The caller must close the returned body.
func (c *Client) Download(ctx context.Context, rawURL string) (*ports.Download, error) {
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", rawURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", rawURL)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		dlErr := zerr.With(domain.ErrDownloadFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(dlErr, "url", rawURL)
	}

	return &ports.Download{
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

var errNotFound = zerr.New("not found")

// notFound keeps the sentinel in the chain so callers can match it with errors.Is.
func notFound(sentinel error) error {
	return zerr.Wrap(sentinel, "registry returned 404")
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return zerr.With(domain.ErrRegistryRequestFailed, "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}

	if err := json.Unmarshal(body, out); err != nil {
		return zerr.Wrap(err, domain.ErrRegistryResponseInvalid.Error())
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	// The token is only for the API host, never for CDN downloads.
	if c.token != "" && req.URL.Host == c.baseURL.Host {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) endpoint(query url.Values, elem ...string) string {
	u := c.baseURL.JoinPath(elem...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func jsonList(v string) string {
	return fmt.Sprintf("[%q]", v)
}
