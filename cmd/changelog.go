package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zendframework/maintainers/internal/orchestrator"
)

func newChangelogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "CHANGELOG.md maintenance",
	}
	cmd.AddCommand(newChangelogBumpCmd(a))
	return cmd
}

func newChangelogBumpCmd(a *app) *cobra.Command {
	var (
		base string
		dir  string
	)
	cmd := &cobra.Command{
		Use:   "bump <version>",
		Short: "Open the next development version in CHANGELOG.md",
		Long: `Create a version/bump branch from the base branch (master by default) and
add an empty "<version> - TBD" section to CHANGELOG.md, committed on that branch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			orch := orchestrator.NewChangelogBumpOrchestrator(c.gitFactory, c.fsRepo, c.printer, c.logger)
			return orch.Execute(cmd.Context(), orchestrator.ChangelogBumpConfig{
				Version: args[0],
				Base:    base,
				Dir:     dir,
			})
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", "master", `Branch to bump; one of "master" or "develop"`)
	cmd.Flags().StringVar(&dir, "dir", ".", "Path to the repository checkout")
	return cmd
}
