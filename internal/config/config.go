// Package config holds the TOML-backed settings that the fmm CLI reads
// before resolving or installing mods: where the portal lives, which game
// version to pretend internal mods are bundled at, and where the mod list,
// lockfile, and install target live on disk.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// DefaultPortalURL is the public Factorio mod portal.
const DefaultPortalURL = "https://mods.factorio.com"

// Config is the user-editable settings file, conventionally named
// fmm.toml.
type Config struct {
	PortalURL       string
	FactorioVersion string
	ModListPath     string
	LockFilePath    string
	TargetDir       string
	Username        string
	Token           string
}

type rawConfig struct {
	Portal  rawPortal  `toml:"portal"`
	Install rawInstall `toml:"install"`
	Auth    rawAuth    `toml:"auth"`
}

type rawPortal struct {
	URL             string `toml:"url"`
	FactorioVersion string `toml:"factorio_version"`
}

type rawInstall struct {
	ModListPath  string `toml:"mod_list"`
	LockFilePath string `toml:"lock_file"`
	TargetDir    string `toml:"target_dir"`
}

type rawAuth struct {
	Username string `toml:"username"`
	Token    string `toml:"token"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		PortalURL:       DefaultPortalURL,
		FactorioVersion: "2.0.28",
		ModListPath:     "mod-list.txt",
		LockFilePath:    "fmm-lock.json",
		TargetDir:       "mods",
	}
}

// Read parses a Config from r, falling back to Default for any field the
// TOML document leaves unset.
func Read(r io.Reader) (*Config, error) {
	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	var raw rawConfig
	if err := toml.Unmarshal(buf.Bytes(), &raw); err != nil {
		return nil, errors.Wrap(err, "parsing config as TOML")
	}

	cfg := Default()
	if raw.Portal.URL != "" {
		cfg.PortalURL = raw.Portal.URL
	}
	if raw.Portal.FactorioVersion != "" {
		cfg.FactorioVersion = raw.Portal.FactorioVersion
	}
	if raw.Install.ModListPath != "" {
		cfg.ModListPath = raw.Install.ModListPath
	}
	if raw.Install.LockFilePath != "" {
		cfg.LockFilePath = raw.Install.LockFilePath
	}
	if raw.Install.TargetDir != "" {
		cfg.TargetDir = raw.Install.TargetDir
	}
	cfg.Username = raw.Auth.Username
	cfg.Token = raw.Auth.Token

	return cfg, nil
}

// ReadFile reads and parses the config at path. A missing file is not an
// error: it yields Default().
func ReadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "opening config %s", path)
	}
	defer f.Close()
	return Read(f)
}

func (c *Config) toRaw() rawConfig {
	return rawConfig{
		Portal: rawPortal{
			URL:             c.PortalURL,
			FactorioVersion: c.FactorioVersion,
		},
		Install: rawInstall{
			ModListPath:  c.ModListPath,
			LockFilePath: c.LockFilePath,
			TargetDir:    c.TargetDir,
		},
		Auth: rawAuth{
			Username: c.Username,
			Token:    c.Token,
		},
	}
}

// MarshalTOML serializes c into TOML via an intermediate raw form, so that
// the on-disk field names stay stable independent of the Go field names.
func (c *Config) MarshalTOML() ([]byte, error) {
	result, err := toml.Marshal(c.toRaw())
	return result, errors.Wrap(err, "marshaling config to TOML")
}
