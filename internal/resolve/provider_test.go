package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func TestStaticProviderFind(t *testing.T) {
	a := resolve.NewPackage("a", []resolve.ReleaseSpec{{Version: resolve.NewVersion(0, 0, 0)}})
	b := resolve.NewPackage("b", []resolve.ReleaseSpec{{Version: resolve.NewVersion(0, 0, 0)}})
	provider := resolve.NewStaticProvider(a, b)

	got, err := provider.Find("b")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = provider.Find("missing")
	require.Error(t, err)
	var target *resolve.MissingPackageError
	assert.ErrorAs(t, err, &target)
}
