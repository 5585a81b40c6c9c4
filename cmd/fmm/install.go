package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/henkkuli/factorio-mod-manager/internal/lockfile"
	"github.com/henkkuli/factorio-mod-manager/internal/modlist"
	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func newInstallCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve the mod list, download every mod into the target directory, and write the lockfile",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(flags)
			if err != nil {
				return err
			}
			defer sess.logger.Sync() //nolint:errcheck

			ctx := context.Background()

			selected, err := resolve.NewResolver(sess.provider, sess.resolverOptions(flags.trace)...).Resolve(sess.roots)
			if err != nil {
				return errors.Wrap(err, "resolving mod list")
			}

			names := make([]string, 0, len(selected))
			for name := range selected {
				names = append(names, name)
			}
			sort.Strings(names)

			extra := make(map[string]lockfile.Entry, len(selected))
			for _, name := range names {
				pv := selected[name]
				path, err := sess.provider.InstallTo(ctx, sess.cfg.TargetDir, name, pv.Version)
				if err != nil {
					return errors.Wrapf(err, "installing %s", pv.String())
				}
				if path == "" {
					continue
				}
				meta, _ := sess.provider.Meta(name, pv.Version)
				extra[name] = lockfile.Entry{
					DownloadURL: meta.DownloadURL,
					FileName:    meta.FileName,
					SHA1:        meta.SHA1,
				}
				fmt.Fprintf(cmd.OutOrStdout(), "installed %s -> %s\n", pv.String(), path)
			}

			lf := lockfile.FromSelection(selected, extra)
			if err := lf.WriteFile(sess.cfg.LockFilePath); err != nil {
				return errors.Wrap(err, "writing lockfile")
			}

			if err := modlist.WriteGameModListFile("mod-list.json", names); err != nil {
				return errors.Wrap(err, "writing mod-list.json")
			}

			return nil
		},
	}
	return cmd
}
