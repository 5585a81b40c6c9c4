package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/henkkuli/factorio-mod-manager/internal/config"
	"github.com/henkkuli/factorio-mod-manager/internal/modlist"
	"github.com/henkkuli/factorio-mod-manager/internal/portal"
	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

// session bundles everything a subcommand needs once flags and config have
// been merged: the effective config, the parsed mod list, and a portal
// client/provider pair wired to it.
type session struct {
	cfg      *config.Config
	roots    []resolve.Requirement
	provider *portal.Provider
	logger   *zap.Logger
}

func newSession(flags *globalFlags) (*session, error) {
	cfg, err := config.ReadFile(flags.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	applyOverrides(cfg, flags)

	logger, err := newZapLogger(flags.verbose)
	if err != nil {
		return nil, errors.Wrap(err, "setting up logger")
	}

	roots, err := modlist.ReadFile(cfg.ModListPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading mod list")
	}

	factorioVersion, err := resolve.ParseVersion(cfg.FactorioVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing factorio_version %q", cfg.FactorioVersion)
	}

	client := portal.NewClient(cfg.PortalURL, cfg.Username, cfg.Token)
	provider := portal.NewProvider(client, factorioVersion)

	return &session{cfg: cfg, roots: roots, provider: provider, logger: logger}, nil
}

func applyOverrides(cfg *config.Config, flags *globalFlags) {
	if flags.modListPath != "" {
		cfg.ModListPath = flags.modListPath
	}
	if flags.lockPath != "" {
		cfg.LockFilePath = flags.lockPath
	}
	if flags.targetDir != "" {
		cfg.TargetDir = flags.targetDir
	}
	if flags.portalURL != "" {
		cfg.PortalURL = flags.portalURL
	}
	if flags.factorioVer != "" {
		cfg.FactorioVersion = flags.factorioVer
	}
	if flags.username != "" {
		cfg.Username = flags.username
	}
	if flags.token != "" {
		cfg.Token = flags.token
	}
}

// resolverOptions builds the resolve.Option set for this session, turning
// on trace output through the session's zap logger when requested.
func (s *session) resolverOptions(trace bool) []resolve.Option {
	if !trace {
		return nil
	}
	std := zap.NewStdLog(s.logger)
	return []resolve.Option{resolve.WithTrace(std)}
}
