package resolve

import "sort"

// PackageVersion is a specific release of a Package: its version and the
// requirements it declares on other packages.
//
// The back-reference to the owning Package is modeled as just the package's
// name (cheap, immutable) rather than a pointer back to the Package: code
// that needs the full Package from a PackageVersion goes through a
// PackageProvider.
type PackageVersion struct {
	packageName  string
	Version      Version
	Dependencies []Requirement
}

// Name returns the name of the package this release belongs to.
func (pv PackageVersion) Name() string { return pv.packageName }

func (pv PackageVersion) String() string {
	return pv.packageName + "@" + pv.Version.String()
}

// ReleaseSpec is the raw (version, dependencies) pair used to construct a
// Package's releases.
type ReleaseSpec struct {
	Version      Version
	Dependencies []Requirement
}

// Package is the immutable set of all known releases of a named mod.
type Package struct {
	Name     string
	releases []PackageVersion
}

// NewPackage builds a Package and back-fills each release's package name.
// The input order of releases is not significant; callers that need a
// specific solve order should rely on the resolver's own newest-first
// sort, not on release order here.
func NewPackage(name string, releases []ReleaseSpec) *Package {
	pvs := make([]PackageVersion, len(releases))
	for i, r := range releases {
		deps := append([]Requirement(nil), r.Dependencies...)
		pvs[i] = PackageVersion{packageName: name, Version: r.Version, Dependencies: deps}
	}
	return &Package{Name: name, releases: pvs}
}

// Releases returns every known release of this package, in no particular
// order.
func (p *Package) Releases() []PackageVersion {
	return p.releases
}

// Release looks up the release at an exact version.
func (p *Package) Release(v Version) (PackageVersion, bool) {
	for _, r := range p.releases {
		if r.Version.Equal(v) {
			return r, true
		}
	}
	return PackageVersion{}, false
}

// sortedDescending returns a copy of releases sorted newest-version-first,
// the order the solver always tries candidates in.
func sortedDescending(releases []PackageVersion) []PackageVersion {
	out := append([]PackageVersion(nil), releases...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Version.Compare(out[j].Version) > 0
	})
	return out
}
