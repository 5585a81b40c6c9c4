// Package modlist reads the plain-text mod list a user maintains by hand
// (one requirement per line) and writes the game's own mod-list.json,
// which merely toggles mods on and off rather than expressing versions.
package modlist

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

// Read parses a mod list: one requirement per line; blank lines and lines
// whose first non-whitespace character is '#' are ignored.
func Read(r io.Reader) ([]resolve.Requirement, error) {
	var reqs []resolve.Requirement
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := resolve.ParseRequirement(line)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing mod list line %q", line)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading mod list")
	}
	return reqs, nil
}

// ReadFile opens path and parses it as a mod list.
func ReadFile(path string) ([]resolve.Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening mod list %s", path)
	}
	defer f.Close()
	return Read(f)
}

// gameModList is the shape the game itself reads: mod-list.json.
type gameModList struct {
	Mods []gameModEntry `json:"mods"`
}

type gameModEntry struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// WriteGameModList writes mod-list.json enabling exactly the named mods,
// in addition to the "base" mod, which the game always expects to see
// listed and enabled.
func WriteGameModList(w io.Writer, names []string) error {
	ml := gameModList{Mods: []gameModEntry{{Name: "base", Enabled: true}}}
	for _, name := range names {
		if name == "base" {
			continue
		}
		ml.Mods = append(ml.Mods, gameModEntry{Name: name, Enabled: true})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ml); err != nil {
		return errors.Wrap(err, "encoding mod-list.json")
	}
	return nil
}

// WriteGameModListFile writes mod-list.json to path.
func WriteGameModListFile(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	return WriteGameModList(f, names)
}
