package resolve

import "strings"

// Prefix tags how strongly a Requirement binds the named package into a
// resolution.
type Prefix uint8

const (
	// PrefixNone is a hard, required dependency.
	PrefixNone Prefix = iota
	// PrefixIncompatible forbids the named package from appearing at all.
	PrefixIncompatible
	// PrefixOptional may appear; if it does, its version must satisfy the
	// constraint, but its presence is never forced.
	PrefixOptional
	// PrefixHiddenOptional has identical solver semantics to PrefixOptional.
	PrefixHiddenOptional
	// PrefixUnordered is required for presence; only its ordering hint
	// (irrelevant to the solver) is discarded.
	PrefixUnordered
)

// String renders the prefix in its canonical textual form.
func (p Prefix) String() string {
	switch p {
	case PrefixNone:
		return ""
	case PrefixIncompatible:
		return "!"
	case PrefixOptional:
		return "?"
	case PrefixHiddenOptional:
		return "(?)"
	case PrefixUnordered:
		return "~"
	default:
		return "?unknown-prefix?"
	}
}

// RequiredTriggering reports whether a Requirement with this prefix forces
// the named package to be present in the resolution.
func (p Prefix) RequiredTriggering() bool {
	return p == PrefixNone || p == PrefixUnordered
}

// Comparison is one of the five relational operators a VersionComparison may
// use to test a Version.
type Comparison uint8

const (
	LT Comparison = iota
	LE
	EQ
	GE
	GT
)

func (c Comparison) String() string {
	switch c {
	case LT:
		return "<"
	case LE:
		return "<="
	case EQ:
		return "="
	case GE:
		return ">="
	case GT:
		return ">"
	default:
		return "?unknown-comparison?"
	}
}

// VersionComparison pairs a Comparison operator with the Version it compares
// against.
type VersionComparison struct {
	Comparison Comparison
	Version    Version
}

// Matches reports whether v satisfies this comparison.
func (vc VersionComparison) Matches(v Version) bool {
	switch vc.Comparison {
	case LT:
		return v.Less(vc.Version)
	case LE:
		return v.LessOrEqual(vc.Version)
	case EQ:
		return v.Equal(vc.Version)
	case GE:
		return v.GreaterOrEqual(vc.Version)
	case GT:
		return v.Greater(vc.Version)
	default:
		return false
	}
}

func (vc VersionComparison) String() string {
	return vc.Comparison.String() + " " + vc.Version.String()
}

// Requirement is a single dependency clause: a prefix, a package name, and
// an optional version constraint.
//
// Invariant: if Prefix is PrefixIncompatible, VerComp is always nil - any
// version constraint stated alongside "!" is dropped at parse time, per the
// requirement grammar.
type Requirement struct {
	Prefix  Prefix
	Name    string
	VerComp *VersionComparison
}

// String renders the canonical form: "[prefix ]name[ op version]", with
// single spaces between present tokens and no leading or trailing spaces.
func (r Requirement) String() string {
	var parts []string
	if r.Prefix != PrefixNone {
		parts = append(parts, r.Prefix.String())
	}
	parts = append(parts, r.Name)
	if r.VerComp != nil {
		parts = append(parts, r.VerComp.String())
	}
	return strings.Join(parts, " ")
}

// ParseRequirement parses a requirement string per the grammar:
//
//	requirement := [ prefix ] name [ comparison version ]
//	prefix      := "!" | "?" | "(?)" | "~"
//	comparison  := "<=" | ">=" | "<" | ">" | "="
//
// Whitespace between tokens is insignificant; interior whitespace in the
// name is preserved (some real-world mod names contain spaces).
func ParseRequirement(s string) (Requirement, error) {
	orig := s
	s = strings.TrimSpace(s)

	prefix := PrefixNone
	switch {
	case strings.HasPrefix(s, "(?)"):
		prefix = PrefixHiddenOptional
		s = s[3:]
	case strings.HasPrefix(s, "!"):
		prefix = PrefixIncompatible
		s = s[1:]
	case strings.HasPrefix(s, "?"):
		prefix = PrefixOptional
		s = s[1:]
	case strings.HasPrefix(s, "~"):
		prefix = PrefixUnordered
		s = s[1:]
	}

	s = strings.TrimLeft(s, " \t")

	nameEnd := strings.IndexAny(s, "<=>")
	var name string
	if nameEnd == -1 {
		name = strings.TrimSpace(s)
		s = ""
	} else {
		name = strings.TrimSpace(s[:nameEnd])
		s = s[nameEnd:]
	}
	if name == "" {
		return Requirement{}, &InvalidRequirementError{Input: orig, Cause: "empty name"}
	}

	s = strings.TrimLeft(s, " \t")

	var verComp *VersionComparison
	if s != "" {
		var cmp Comparison
		switch {
		case strings.HasPrefix(s, "<="):
			cmp, s = LE, s[2:]
		case strings.HasPrefix(s, ">="):
			cmp, s = GE, s[2:]
		case strings.HasPrefix(s, "<"):
			cmp, s = LT, s[1:]
		case strings.HasPrefix(s, ">"):
			cmp, s = GT, s[1:]
		case strings.HasPrefix(s, "="):
			cmp, s = EQ, s[1:]
		default:
			return Requirement{}, &InvalidRequirementError{Input: orig, Cause: "expected a comparison operator"}
		}
		s = strings.TrimLeft(s, " \t")

		versionEnd := len(s)
		for i, r := range s {
			if r == ' ' || r == '\t' {
				versionEnd = i
				break
			}
		}
		versionStr := s[:versionEnd]
		rest := strings.TrimSpace(s[versionEnd:])
		if rest != "" {
			return Requirement{}, &InvalidRequirementError{Input: orig, Cause: "unexpected trailing content after version"}
		}

		v, err := ParseVersion(versionStr)
		if err != nil {
			return Requirement{}, &InvalidRequirementError{Input: orig, Cause: "invalid version: " + err.Error()}
		}
		verComp = &VersionComparison{Comparison: cmp, Version: v}
	}

	if prefix == PrefixIncompatible {
		// A version constraint stated alongside an incompatibility prefix
		// is dropped, not an error.
		verComp = nil
	}

	return Requirement{Prefix: prefix, Name: name, VerComp: verComp}, nil
}
