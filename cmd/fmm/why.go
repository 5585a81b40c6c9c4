package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/henkkuli/factorio-mod-manager/internal/resolve"
)

func newWhyCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "why <mod>",
		Short: "Explain why a mod was pulled into the resolution and at what version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			sess, err := newSession(flags)
			if err != nil {
				return err
			}
			defer sess.logger.Sync() //nolint:errcheck

			selected, err := resolve.NewResolver(sess.provider, sess.resolverOptions(flags.trace)...).Resolve(sess.roots)
			if err != nil {
				return errors.Wrap(err, "resolving mod list")
			}

			pv, ok := selected[target]
			if !ok {
				return errors.Errorf("%s is not part of the resolution", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", pv.String())

			out := cmd.OutOrStdout()
			for _, req := range rootDependents(sess.roots, target) {
				fmt.Fprintf(out, "  required directly by the mod list: %s\n", req.String())
			}
			for _, dep := range selectedDependents(selected, target) {
				fmt.Fprintf(out, "  required by %s: %s\n", dep.from, dep.req.String())
			}

			return nil
		},
	}
	return cmd
}

func rootDependents(roots []resolve.Requirement, target string) []resolve.Requirement {
	var out []resolve.Requirement
	for _, r := range roots {
		if r.Name == target {
			out = append(out, r)
		}
	}
	return out
}

type dependent struct {
	from string
	req  resolve.Requirement
}

func selectedDependents(selected map[string]resolve.PackageVersion, target string) []dependent {
	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []dependent
	for _, name := range names {
		pv := selected[name]
		for _, req := range pv.Dependencies {
			if req.Name == target {
				out = append(out, dependent{from: pv.String(), req: req})
			}
		}
	}
	return out
}
