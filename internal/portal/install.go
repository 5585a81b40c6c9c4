package portal

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

// InstallTo downloads the archive for name@v and writes it into targetDir
// under its manifest file name. Internal mods have nothing to install and
// are skipped, returning "", nil.
func (p *Provider) InstallTo(ctx context.Context, targetDir, name string, v resolve.Version) (string, error) {
	if internalMods[name] {
		return "", nil
	}

	data, meta, err := p.Download(ctx, name, v)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating target directory %s", targetDir)
	}

	dest := filepath.Join(targetDir, meta.FileName)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", dest)
	}
	return dest, nil
}
