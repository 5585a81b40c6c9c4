package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func TestPackageReleaseLookup(t *testing.T) {
	pkg := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0)},
		{Version: resolve.NewVersion(1, 0, 0)},
	})

	rel, ok := pkg.Release(resolve.NewVersion(1, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "a", rel.Name())
	assert.True(t, rel.Version.Equal(resolve.NewVersion(1, 0, 0)))

	_, ok = pkg.Release(resolve.NewVersion(2, 0, 0))
	assert.False(t, ok)
}

func TestPackageReleasesAreIndependentCopies(t *testing.T) {
	deps := []resolve.Requirement{{Prefix: resolve.PrefixNone, Name: "b"}}
	pkg := resolve.NewPackage("a", []resolve.ReleaseSpec{
		{Version: resolve.NewVersion(0, 0, 0), Dependencies: deps},
	})

	deps[0] = resolve.Requirement{Prefix: resolve.PrefixNone, Name: "mutated"}

	rel, ok := pkg.Release(resolve.NewVersion(0, 0, 0))
	require.True(t, ok)
	require.Len(t, rel.Dependencies, 1)
	assert.Equal(t, "b", rel.Dependencies[0].Name)
}
