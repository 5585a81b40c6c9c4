package resolve

import (
	"errors"
	"log"
)

// rootPackageName is the synthetic package the resolver seeds the search
// with: the caller's root Requirements become this package's dependencies,
// and it is stripped from the result before returning.
const rootPackageName = "$root"

// Resolver performs a backtracking search: given a PackageProvider and a
// list of root Requirements, it finds a mutually consistent assignment of
// one release per required package, or fails with
// ErrInconsistentRequirements.
//
// Resolver is single-threaded and synchronous. The only place it may block
// is inside provider.Find.
type Resolver struct {
	provider PackageProvider
	tracer   *tracer
}

// Option configures a Resolver at construction time.
type Option func(*Resolver)

// WithTrace turns on trace logging to logger. A nil logger with trace
// enabled panics, since there would be nowhere to write to.
func WithTrace(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger == nil {
			panic("resolve: WithTrace called with a nil logger")
		}
		r.tracer = newTracer(true, logger)
	}
}

// NewResolver builds a Resolver over the given provider.
func NewResolver(provider PackageProvider, opts ...Option) *Resolver {
	r := &Resolver{provider: provider, tracer: newTracer(false, nil)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds a consistent set of PackageVersions satisfying every root
// Requirement, one per package name. It fails with
// ErrInconsistentRequirements if no such set exists, or with whatever error
// the provider returned if a lookup failed along the way.
func (r *Resolver) Resolve(roots []Requirement) (map[string]PackageVersion, error) {
	root := NewPackage(rootPackageName, []ReleaseSpec{{
		Version:      NewVersion(0, 0, 0),
		Dependencies: roots,
	}})

	selected, err := r.search([]*Package{root}, nil, map[string]PackageVersion{})
	r.tracer.finished(err == nil)
	if err != nil {
		return nil, err
	}

	delete(selected, rootPackageName)
	return selected, nil
}

// search is the recursive backtracking step. packages is the worklist
// (stack, LIFO: the end of the slice is the top), reqs is the current
// constraint-layer chain, and selected is the set of packages locked in so
// far along this path.
func (r *Resolver) search(packages []*Package, reqs *constraintLayer, selected map[string]PackageVersion) (map[string]PackageVersion, error) {
	if len(packages) == 0 {
		// Self-consistency check: this should never fail if the algorithm
		// above is correct, so a violation here indicates an internal bug
		// rather than an expected failure mode.
		for name, pv := range selected {
			if pred := reqs.get(name); pred != nil && !pred.eval(pv) {
				panic("resolve: internal invariant violated: " + name + " does not satisfy its own recorded constraint")
			}
		}
		out := make(map[string]PackageVersion, len(selected))
		for k, v := range selected {
			out[k] = v
		}
		return out, nil
	}

	pkg := packages[len(packages)-1]
	rest := packages[:len(packages)-1]

	pred := reqs.get(pkg.Name)
	var candidates []PackageVersion
	for _, rel := range pkg.Releases() {
		if pred == nil || pred.eval(rel) {
			candidates = append(candidates, rel)
		}
	}
	candidates = sortedDescending(candidates)

	r.tracer.tryPackage(pkg.Name, candidates)

	for _, candidate := range candidates {
		if err := checkAgainstSelected(candidate, selected); err != nil {
			// A dependency of this tentative release contradicts an
			// already-selected package: this candidate is wrong, but
			// siblings of it (older releases of the same package) may
			// still work, so try the next one in this same loop rather
			// than propagating out of the frame.
			r.tracer.rejected(candidate, "conflicts with an already-selected package")
			continue
		}

		newLayer := make(map[string]*predicate, len(candidate.Dependencies)+1)
		for _, dep := range candidate.Dependencies {
			newLayer[dep.Name] = buildPredicate(dep, reqs.get(dep.Name))
		}
		// Lock in: whatever else this layer says about pkg.Name, it must
		// now equal exactly this version.
		newLayer[pkg.Name] = equalsFor(pkg.Name, candidate.Version)
		newReqs := reqs.push(newLayer)

		newPackages := append([]*Package(nil), rest...)
		for _, dep := range candidate.Dependencies {
			if !dep.Prefix.RequiredTriggering() {
				continue
			}
			if _, ok := selected[dep.Name]; ok {
				continue
			}
			depPkg, err := r.provider.Find(dep.Name)
			if err != nil {
				return nil, err
			}
			newPackages = append(newPackages, depPkg)
		}

		newSelected := make(map[string]PackageVersion, len(selected)+1)
		for k, v := range selected {
			newSelected[k] = v
		}
		newSelected[pkg.Name] = candidate

		r.tracer.selected(candidate)
		r.tracer.descend()
		result, err := r.search(newPackages, newReqs, newSelected)
		r.tracer.ascend()
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrInconsistentRequirements) {
			// Provider failures are fatal; never treated as "try the next
			// candidate".
			return nil, err
		}
		r.tracer.rejected(candidate, "no consistent solution beneath this choice")
	}

	return nil, ErrInconsistentRequirements
}

// checkAgainstSelected implements the forward check in the per-candidate
// step: every dependency of candidate that names an already-selected
// package must be satisfied by that package's selected version.
func checkAgainstSelected(candidate PackageVersion, selected map[string]PackageVersion) error {
	for _, dep := range candidate.Dependencies {
		sel, ok := selected[dep.Name]
		if !ok {
			continue
		}
		leaf := buildPredicate(dep, nil)
		if !leaf.eval(sel) {
			return ErrInconsistentRequirements
		}
	}
	return nil
}

// Resolve is a package-level convenience wrapping NewResolver(provider).Resolve(roots).
func Resolve(provider PackageProvider, roots []Requirement) (map[string]PackageVersion, error) {
	return NewResolver(provider).Resolve(roots)
}
