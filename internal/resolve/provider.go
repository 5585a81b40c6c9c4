package resolve

import "fmt"

// PackageProvider looks up a Package by name. Find is deterministic for the
// lifetime of one resolution, may be expensive, and may fail; the resolver
// propagates a Find error unchanged rather than catching it.
type PackageProvider interface {
	Find(name string) (*Package, error)
}

// MissingPackageError is returned by a PackageProvider when no package is
// known under the requested name.
type MissingPackageError struct {
	Name string
}

func (e *MissingPackageError) Error() string {
	return fmt.Sprintf("no such package: %q", e.Name)
}

// StaticProvider is a PackageProvider backed by a fixed, in-memory list. It
// does a linear scan by name; fine for tests and small fixed catalogs.
type StaticProvider struct {
	packages []*Package
}

// NewStaticProvider builds a StaticProvider over a fixed set of packages.
func NewStaticProvider(packages ...*Package) *StaticProvider {
	return &StaticProvider{packages: packages}
}

// Find scans the backing list for a package with this name.
func (s *StaticProvider) Find(name string) (*Package, error) {
	for _, p := range s.packages {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, &MissingPackageError{Name: name}
}
