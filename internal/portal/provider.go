package portal

import (
	"context"
	"sync"

	radix "github.com/armon/go-radix"
	"github.com/pkg/errors"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

// internalMods are bundled with the game itself rather than distributed
// through the portal. The resolver sees them like any other package: a
// single release, no dependencies, at whatever version the running game
// reports.
var internalMods = map[string]bool{
	"base":           true,
	"space-age":      true,
	"elevated-rails": true,
	"quality":        true,
}

// Provider is a resolve.PackageProvider backed by the mod portal. Lookups
// are memoized in a prefix tree keyed by mod name, so that a mod pulled in
// by several dependents is only fetched once per resolution.
type Provider struct {
	client          *Client
	factorioVersion resolve.Version

	mu    sync.Mutex
	cache *radix.Tree

	// DownloadMeta accumulates download metadata (URL, file name, sha1) for
	// every non-internal release that Find returns, keyed by "name@version", so that
	// the installer can build a lockfile without re-fetching manifests.
	DownloadMeta map[string]ReleaseMeta
}

// ReleaseMeta is the download-time metadata for one resolved release, the
// fields the resolver itself has no use for.
type ReleaseMeta struct {
	DownloadURL string
	FileName    string
	SHA1        string
}

// NewProvider builds a Provider. factorioVersion is the version internal
// (bundled) mods are reported at.
func NewProvider(client *Client, factorioVersion resolve.Version) *Provider {
	return &Provider{
		client:          client,
		factorioVersion: factorioVersion,
		cache:           radix.New(),
		DownloadMeta:    map[string]ReleaseMeta{},
	}
}

// Find implements resolve.PackageProvider. It blocks on network I/O the
// first time a given name is requested; subsequent lookups of the same
// name are served from the cache.
func (p *Provider) Find(name string) (*resolve.Package, error) {
	return p.FindContext(context.Background(), name)
}

// FindContext is Find with an explicit context, for callers that want to
// bound or cancel the network fetch.
func (p *Provider) FindContext(ctx context.Context, name string) (*resolve.Package, error) {
	p.mu.Lock()
	if cached, ok := p.cache.Get(name); ok {
		p.mu.Unlock()
		return cached.(*resolve.Package), nil
	}
	p.mu.Unlock()

	var pkg *resolve.Package
	var err error
	if internalMods[name] {
		pkg = p.buildInternal(name)
	} else {
		pkg, err = p.fetch(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	p.cache.Insert(name, pkg)
	p.mu.Unlock()
	return pkg, nil
}

func (p *Provider) buildInternal(name string) *resolve.Package {
	return resolve.NewPackage(name, []resolve.ReleaseSpec{{Version: p.factorioVersion}})
}

func (p *Provider) fetch(ctx context.Context, name string) (*resolve.Package, error) {
	m, err := p.client.fetchManifest(ctx, name)
	if err != nil {
		return nil, err
	}

	releases := make([]resolve.ReleaseSpec, 0, len(m.Releases))
	for _, rel := range m.Releases {
		v, err := resolve.ParseVersion(rel.Version)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing version of %s release in manifest for %s", rel.Version, name)
		}
		deps := make([]resolve.Requirement, 0, len(rel.Dependencies))
		for _, d := range rel.Dependencies {
			req, err := resolve.ParseRequirement(d)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing dependency %q of %s %s", d, name, rel.Version)
			}
			deps = append(deps, req)
		}
		releases = append(releases, resolve.ReleaseSpec{Version: v, Dependencies: deps})

		p.DownloadMeta[releaseKey(name, v)] = ReleaseMeta{
			DownloadURL: rel.DownloadURL,
			FileName:    rel.FileName,
			SHA1:        rel.SHA1,
		}
	}

	return resolve.NewPackage(name, releases), nil
}

func releaseKey(name string, v resolve.Version) string {
	return name + "@" + v.String()
}

// Meta returns the download metadata recorded for a resolved release, if
// any. Internal mods have none, since they are never downloaded.
func (p *Provider) Meta(name string, v resolve.Version) (ReleaseMeta, bool) {
	m, ok := p.DownloadMeta[releaseKey(name, v)]
	return m, ok
}

// Download fetches the archive for a release previously seen by Find and
// verifies it against the sha1 recorded in its manifest entry.
func (p *Provider) Download(ctx context.Context, name string, v resolve.Version) ([]byte, ReleaseMeta, error) {
	meta, ok := p.Meta(name, v)
	if !ok {
		return nil, ReleaseMeta{}, errors.Errorf("no download metadata for %s %s (internal mod, or never resolved)", name, v)
	}

	data, err := p.client.fetchArchive(ctx, meta.DownloadURL)
	if err != nil {
		return nil, ReleaseMeta{}, err
	}

	if err := verifySHA1(data, meta.SHA1); err != nil {
		return nil, ReleaseMeta{}, errors.Wrapf(err, "verifying archive for %s %s", name, v)
	}

	return data, meta, nil
}
