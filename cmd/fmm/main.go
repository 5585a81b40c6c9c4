// Command fmm resolves and installs mods for a Factorio server or client
// from the mod portal, producing a reproducible lockfile.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fmm: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	modListPath string
	lockPath    string
	targetDir   string
	portalURL   string
	factorioVer string
	username    string
	token       string
	verbose     bool
	trace       bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "fmm",
		Short: "Resolve and install Factorio mods from the mod portal",
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "fmm.toml", "path to the config file")
	pf.StringVar(&flags.modListPath, "mods", "", "path to the mod list (overrides config)")
	pf.StringVar(&flags.lockPath, "lock", "", "path to the lockfile (overrides config)")
	pf.StringVar(&flags.targetDir, "target", "", "mod install directory (overrides config)")
	pf.StringVar(&flags.portalURL, "portal-url", "", "mod portal base URL (overrides config)")
	pf.StringVar(&flags.factorioVer, "factorio-version", "", "game version for internal mods (overrides config)")
	pf.StringVar(&flags.username, "username", "", "mod portal username")
	pf.StringVar(&flags.token, "token", "", "mod portal token")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flags.trace, "trace", false, "trace every step of the resolver's search")

	root.AddCommand(newResolveCommand(flags))
	root.AddCommand(newInstallCommand(flags))
	root.AddCommand(newWhyCommand(flags))

	return root
}

func newZapLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
