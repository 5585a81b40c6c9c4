// Package lockfile reads and writes the JSON lockfile that records exactly
// which release of every mod was installed, with its download URL, file
// name and sha1. fmm install writes it after resolving; no fmm command
// reads it back, so every install runs the resolver again.
package lockfile

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

// Entry is one locked mod release.
type Entry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	DownloadURL string `json:"download_url"`
	FileName    string `json:"file_name"`
	SHA1        string `json:"sha1"`
}

// Lockfile is a JSON array of Entry, sorted by Name.
type Lockfile struct {
	Entries []Entry
}

// FromSelection builds a Lockfile from a resolved selection, pairing each
// PackageVersion with its download metadata. extra is consulted by package
// name for the fields the resolver itself doesn't know about (download URL,
// file name, sha1); a name absent from extra keeps those fields empty,
// which is the expected shape for internal (bundled) mods.
func FromSelection(selected map[string]resolve.PackageVersion, extra map[string]Entry) *Lockfile {
	lf := &Lockfile{Entries: make([]Entry, 0, len(selected))}
	for name, pv := range selected {
		e := Entry{Name: name, Version: pv.Version.String()}
		if x, ok := extra[name]; ok {
			e.DownloadURL = x.DownloadURL
			e.FileName = x.FileName
			e.SHA1 = x.SHA1
		}
		lf.Entries = append(lf.Entries, e)
	}
	lf.sort()
	return lf
}

func (lf *Lockfile) sort() {
	sort.Slice(lf.Entries, func(i, j int) bool {
		return lf.Entries[i].Name < lf.Entries[j].Name
	})
}

// Find returns the entry for name, if locked.
func (lf *Lockfile) Find(name string) (Entry, bool) {
	for _, e := range lf.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Read decodes a Lockfile from r. An empty (zero-byte) input decodes to a
// Lockfile with no entries, matching a fresh install with no prior lock.
func Read(r io.Reader) (*Lockfile, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return &Lockfile{}, nil
		}
		return nil, errors.Wrap(err, "decoding lockfile")
	}
	lf := &Lockfile{Entries: entries}
	lf.sort()
	return lf, nil
}

// ReadFile opens path and decodes it as a Lockfile. A missing file is not an
// error: it is treated the same as an empty lockfile.
func ReadFile(path string) (*Lockfile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Lockfile{}, nil
		}
		return nil, errors.Wrapf(err, "opening lockfile %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes lf to w as indented JSON, sorted by name.
func (lf *Lockfile) Write(w io.Writer) error {
	lf.sort()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lf.Entries); err != nil {
		return errors.Wrap(err, "encoding lockfile")
	}
	return nil
}

// WriteFile writes lf to path, creating or truncating it.
func (lf *Lockfile) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating lockfile %s", path)
	}
	defer f.Close()
	return lf.Write(f)
}
