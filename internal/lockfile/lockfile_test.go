package lockfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henkkuli/factorio-mod-manager/internal/lockfile"
	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func TestFromSelectionIsSortedByName(t *testing.T) {
	selected := map[string]resolve.PackageVersion{
		"zeta": mustRelease(t, "zeta", "1.0.0"),
		"alfa": mustRelease(t, "alfa", "2.0.0"),
	}
	extra := map[string]lockfile.Entry{
		"alfa": {DownloadURL: "/download/alfa", FileName: "alfa.zip", SHA1: "deadbeef"},
	}

	lf := lockfile.FromSelection(selected, extra)
	require.Len(t, lf.Entries, 2)
	assert.Equal(t, "alfa", lf.Entries[0].Name)
	assert.Equal(t, "zeta", lf.Entries[1].Name)
	assert.Equal(t, "alfa.zip", lf.Entries[0].FileName)
	assert.Empty(t, lf.Entries[1].FileName)
}

func TestLockfileRoundTrip(t *testing.T) {
	lf := &lockfile.Lockfile{Entries: []lockfile.Entry{
		{Name: "b", Version: "1.0.0", FileName: "b.zip", SHA1: "abc"},
		{Name: "a", Version: "2.0.0", FileName: "a.zip", SHA1: "def"},
	}}

	var buf bytes.Buffer
	require.NoError(t, lf.Write(&buf))

	got, err := lockfile.Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "a", got.Entries[0].Name)
	assert.Equal(t, "b", got.Entries[1].Name)
}

func TestReadFileMissingIsEmpty(t *testing.T) {
	lf, err := lockfile.ReadFile("/nonexistent/path/fmm-lock.json")
	require.NoError(t, err)
	assert.Empty(t, lf.Entries)
}

func mustRelease(t *testing.T, name, version string) resolve.PackageVersion {
	t.Helper()
	v, err := resolve.ParseVersion(version)
	require.NoError(t, err)
	pkg := resolve.NewPackage(name, []resolve.ReleaseSpec{{Version: v}})
	rel, ok := pkg.Release(v)
	require.True(t, ok)
	return rel
}
