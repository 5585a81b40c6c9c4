package modlist_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henkkuli/factorio-mod-manager/internal/modlist"
)

func TestReadSkipsBlankAndCommentLines(t *testing.T) {
	input := strings.NewReader(`
# a comment
mod-a

? mod-c > 0.4.3
  # indented comment
! mod-g
`)
	reqs, err := modlist.Read(input)
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "mod-a", reqs[0].Name)
	assert.Equal(t, "mod-c", reqs[1].Name)
	assert.Equal(t, "mod-g", reqs[2].Name)
}

func TestReadRejectsInvalidLine(t *testing.T) {
	_, err := modlist.Read(strings.NewReader("mod < 1.2.3 > 4.5.6"))
	require.Error(t, err)
}

func TestWriteGameModListAlwaysEnablesBase(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, modlist.WriteGameModList(&buf, []string{"a", "base", "b"}))
	assert.Equal(t, `{
  "mods": [
    {
      "name": "base",
      "enabled": true
    },
    {
      "name": "a",
      "enabled": true
    },
    {
      "name": "b",
      "enabled": true
    }
  ]
}
`, buf.String())
}
