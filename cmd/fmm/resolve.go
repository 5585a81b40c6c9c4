package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func newResolveCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the mod list to a concrete set of versions without installing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(flags)
			if err != nil {
				return err
			}
			defer sess.logger.Sync() //nolint:errcheck

			selected, err := resolve.NewResolver(sess.provider, sess.resolverOptions(flags.trace)...).Resolve(sess.roots)
			if err != nil {
				return errors.Wrap(err, "resolving mod list")
			}

			printSelection(cmd, selected)
			return nil
		},
	}
	return cmd
}

func printSelection(cmd *cobra.Command, selected map[string]resolve.PackageVersion) {
	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), selected[name].String())
	}
}
