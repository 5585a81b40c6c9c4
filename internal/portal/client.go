// Package portal is a PackageProvider backed by the Factorio mod portal:
// an HTTP JSON API serving per-mod manifests plus signed zip archives.
package portal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// manifestRelease is one release as the portal's "full" info endpoint
// describes it.
type manifestRelease struct {
	Version      string   `json:"version"`
	Dependencies []string `json:"dependencies"`
	DownloadURL  string   `json:"download_url"`
	FileName     string   `json:"file_name"`
	SHA1         string   `json:"sha1"`
}

// manifest is the subset of the portal's "full" mod info response the
// resolver and installer care about.
type manifest struct {
	Name     string            `json:"name"`
	Releases []manifestRelease `json:"releases"`
}

// Client fetches mod manifests and archives from the mod portal over HTTP.
type Client struct {
	baseURL    string
	username   string
	token      string
	httpClient *http.Client
}

// NewClient builds a Client against baseURL (e.g. "https://mods.factorio.com").
// username and token, unless both are empty, are attached as query
// parameters to archive download requests, matching the portal's
// authentication scheme; manifest requests are sent without them.
func NewClient(baseURL, username, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		token:      token,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) authenticate(u *url.URL) {
	if c.username == "" && c.token == "" {
		return
	}
	q := u.Query()
	q.Set("username", c.username)
	q.Set("token", c.token)
	u.RawQuery = q.Encode()
}

// fetchManifest retrieves the full mod info document for name.
func (c *Client) fetchManifest(ctx context.Context, name string) (*manifest, error) {
	u, err := url.Parse(c.baseURL + "/api/mods/" + url.PathEscape(name) + "/full")
	if err != nil {
		return nil, errors.Wrapf(err, "building manifest URL for %s", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building manifest request for %s", name)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching manifest for %s", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Name: name}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("mod portal returned %s for %s", resp.Status, name)
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "decoding manifest for %s", name)
	}
	return &m, nil
}

// fetchArchive downloads the archive at downloadPath (as returned in a
// manifestRelease's DownloadURL, which is portal-relative) and returns its
// raw bytes.
func (c *Client) fetchArchive(ctx context.Context, downloadPath string) ([]byte, error) {
	u, err := url.Parse(c.baseURL + downloadPath)
	if err != nil {
		return nil, errors.Wrapf(err, "building download URL for %s", downloadPath)
	}
	c.authenticate(u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building download request for %s", downloadPath)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "downloading %s", downloadPath)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("mod portal returned %s downloading %s", resp.Status, downloadPath)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "reading archive body for %s", downloadPath)
	}
	return data, nil
}

// maxArchiveBytes bounds a single mod archive download; mod portal zips are
// a few megabytes at most, so this is generous headroom, not a real limit.
const maxArchiveBytes = 1 << 30

// NotFoundError is returned when the portal has no mod by the requested
// name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "mod portal: no such mod: " + e.Name
}
