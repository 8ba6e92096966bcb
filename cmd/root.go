package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zendframework/maintainers/internal/logger"
	"github.com/zendframework/maintainers/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "zf-maintainer",
	Short: "Release tooling for Zend Framework maintainers",
	Long: `zf-maintainer tags LTS releases across the split component repositories,
stages patch releases of the monolithic repository and opens changelogs for
the next development version.`,
	Version:       version.Summary(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// InitCommands registers global flags and every command on the root command
func InitCommands() error {
	registerCommands(rootCmd, &app{})
	return nil
}

func registerCommands(root *cobra.Command, a *app) {
	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Show progress lines and debug logs")
	flags.StringVar(&a.opts.logFormat, "log-format", string(logger.FormatConsole), "Log format: "+formatNames())
	flags.StringVar(&a.opts.configFile, "config", "", "Configuration file (default ./.zf-maintainer.yaml)")
	flags.BoolVar(&a.opts.dryRun, "dry-run", false, "Log git commands instead of running them and keep file changes in memory")
	root.AddCommand(
		newLtsCmd(a),
		newChangelogCmd(a),
		newReposCmd(a),
		newVersionCmd(),
	)
}

func formatNames() string {
	names := make([]string, 0, len(logger.Formats))
	for _, f := range logger.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// splitList trims every entry and drops empty ones.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
