package resolve_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func mustParse(t *testing.T, s string) resolve.Requirement {
	t.Helper()
	r, err := resolve.ParseRequirement(s)
	require.NoError(t, err)
	return r
}

func roots(t *testing.T, reqs ...string) []resolve.Requirement {
	t.Helper()
	out := make([]resolve.Requirement, len(reqs))
	for i, r := range reqs {
		out[i] = mustParse(t, r)
	}
	return out
}

func assertSelected(t *testing.T, got map[string]resolve.PackageVersion, want map[string]resolve.Version) {
	t.Helper()
	require.Len(t, got, len(want), "selected set: %v", got)
	for name, v := range want {
		pv, ok := got[name]
		require.Truef(t, ok, "expected %q to be selected", name)
		assert.Truef(t, pv.Version.Equal(v), "expected %s@%s, got %s@%s", name, v, name, pv.Version)
	}
}

func TestResolverTrivial(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{{Version: resolve.NewVersion(0, 0, 0)}})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "a")},
	})
	provider := resolve.NewStaticProvider(a, b)

	got, err := resolve.Resolve(provider, roots(t, "a"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{"a": resolve.NewVersion(0, 0, 0)})

	got, err = resolve.Resolve(provider, roots(t, "b"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{
		"a": resolve.NewVersion(0, 0, 0),
		"b": resolve.NewVersion(0, 0, 0),
	})

	_, err = resolve.Resolve(provider, roots(t, "b >= 1.0.0"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrInconsistentRequirements))
}

func TestResolverOptionalPullsOlderVersion(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0)},
		{Version: resolve.NewVersion(1, 0, 0)},
		{Version: resolve.NewVersion(2, 0, 0)},
	})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "a >= 0.0.0")},
	})
	c := resolve.NewPackage("c", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "? a < 2.0.0")},
	})
	provider := resolve.NewStaticProvider(a, b, c)

	got, err := resolve.Resolve(provider, roots(t, "b"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{
		"a": resolve.NewVersion(2, 0, 0),
		"b": resolve.NewVersion(0, 0, 0),
	})

	got, err = resolve.Resolve(provider, roots(t, "c"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{
		"c": resolve.NewVersion(0, 0, 0),
	})

	for _, order := range [][]string{{"b", "c"}, {"c", "b"}} {
		got, err := resolve.Resolve(provider, roots(t, order...))
		require.NoError(t, err)
		assertSelected(t, got, map[string]resolve.Version{
			"a": resolve.NewVersion(1, 0, 0),
			"b": resolve.NewVersion(0, 0, 0),
			"c": resolve.NewVersion(0, 0, 0),
		})
	}
}

func TestResolverBacktrackPastNewest(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "b", "c")},
	})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(1, 0, 0), Dependencies: roots(t, "c = 1.0.0")},
		{Version: resolve.NewVersion(0, 0, 0)},
	})
	c := resolve.NewPackage("c", []resolve.ReleaseSpec{{Version: resolve.NewVersion(0, 0, 0)}})
	provider := resolve.NewStaticProvider(a, b, c)

	got, err := resolve.Resolve(provider, roots(t, "a"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{
		"a": resolve.NewVersion(0, 0, 0),
		"b": resolve.NewVersion(0, 0, 0),
		"c": resolve.NewVersion(0, 0, 0),
	})
}

func TestResolverIncompatible(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "! b")},
	})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{{Version: resolve.NewVersion(0, 0, 0)}})
	provider := resolve.NewStaticProvider(a, b)

	_, err := resolve.Resolve(provider, roots(t, "a", "b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrInconsistentRequirements))

	got, err := resolve.Resolve(provider, roots(t, "a"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{"a": resolve.NewVersion(0, 0, 0)})
}

func TestResolverCycle(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "b")},
	})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "a")},
	})
	provider := resolve.NewStaticProvider(a, b)

	got, err := resolve.Resolve(provider, roots(t, "a"))
	require.NoError(t, err)
	assertSelected(t, got, map[string]resolve.Version{
		"a": resolve.NewVersion(0, 0, 0),
		"b": resolve.NewVersion(0, 0, 0),
	})
}

// TestResolverDeterminism checks that repeated resolutions of the same
// input produce the identical selected set.
func TestResolverDeterminism(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0)},
		{Version: resolve.NewVersion(1, 0, 0)},
	})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "a >= 0.0.0")},
	})
	provider := resolve.NewStaticProvider(a, b)

	first, err := resolve.Resolve(provider, roots(t, "b"))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := resolve.Resolve(provider, roots(t, "b"))
		require.NoError(t, err)
		assertSelected(t, again, map[string]resolve.Version{
			"a": first["a"].Version,
			"b": first["b"].Version,
		})
	}
}

func TestResolverMissingPackagePropagatesProviderError(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: roots(t, "ghost")},
	})
	provider := resolve.NewStaticProvider(a)

	_, err := resolve.Resolve(provider, roots(t, "a"))
	require.Error(t, err)
	var target *resolve.MissingPackageError
	assert.ErrorAs(t, err, &target)
	assert.False(t, errors.Is(err, resolve.ErrInconsistentRequirements))
}
