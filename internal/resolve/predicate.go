package resolve

import "fmt"

// predicate is the resolver's constraint representation: an algebraic value
// rather than a closure. Representing constraints as data instead of
// func(PackageVersion) bool means a predicate can describe itself (see
// String). The trace output and the why command do not print predicates.
type predicateKind uint8

const (
	predUnconstrained predicateKind = iota
	predEquals
	predMatches
	predForbidden
	predAnd
)

type predicate struct {
	kind predicateKind
	name string // target package name; irrelevant for predAnd

	version Version           // for predEquals
	vercomp VersionComparison // for predMatches

	left, right *predicate // for predAnd
}

func unconstrainedFor(name string) *predicate { return &predicate{kind: predUnconstrained, name: name} }
func forbiddenFor(name string) *predicate     { return &predicate{kind: predForbidden, name: name} }

func equalsFor(name string, v Version) *predicate {
	return &predicate{kind: predEquals, name: name, version: v}
}

func matchesFor(name string, vc VersionComparison) *predicate {
	return &predicate{kind: predMatches, name: name, vercomp: vc}
}

// and combines two predicates by logical AND. A nil operand is treated as
// "no constraint yet" and simply drops out.
func and(a, b *predicate) *predicate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &predicate{kind: predAnd, left: a, right: b}
}

// eval reports whether pv satisfies this predicate. A nil predicate always
// matches (an as-yet-unconstrained name).
func (p *predicate) eval(pv PackageVersion) bool {
	if p == nil {
		return true
	}
	switch p.kind {
	case predAnd:
		return p.left.eval(pv) && p.right.eval(pv)
	case predForbidden:
		return pv.Name() != p.name
	case predUnconstrained:
		return true
	case predEquals:
		if pv.Name() != p.name {
			return true
		}
		return pv.Version.Equal(p.version)
	case predMatches:
		if pv.Name() != p.name {
			return true
		}
		return p.vercomp.Matches(pv.Version)
	default:
		return true
	}
}

// String renders a predicate in human-readable form.
func (p *predicate) String() string {
	if p == nil {
		return "<unconstrained>"
	}
	switch p.kind {
	case predAnd:
		return fmt.Sprintf("(%s) and (%s)", p.left.String(), p.right.String())
	case predForbidden:
		return fmt.Sprintf("%s must not be selected", p.name)
	case predUnconstrained:
		return fmt.Sprintf("%s: any version", p.name)
	case predEquals:
		return fmt.Sprintf("%s = %s", p.name, p.version)
	case predMatches:
		return fmt.Sprintf("%s %s", p.name, p.vercomp)
	default:
		return "<unknown predicate>"
	}
}

// buildPredicate constructs the predicate a single Requirement contributes
// for its target name, combined by AND with whatever predicate already
// applies to that name from an outer constraint layer. An INCOMPATIBLE
// prefix forbids the name outright; otherwise a version comparison (if any)
// applies only to candidates of the same name, and anything else is left
// unconstrained by this particular requirement.
func buildPredicate(r Requirement, prev *predicate) *predicate {
	var leaf *predicate
	switch {
	case r.Prefix == PrefixIncompatible:
		leaf = forbiddenFor(r.Name)
	case r.VerComp == nil:
		leaf = unconstrainedFor(r.Name)
	default:
		leaf = matchesFor(r.Name, *r.VerComp)
	}
	return and(prev, leaf)
}
