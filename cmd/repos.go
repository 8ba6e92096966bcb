package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zendframework/maintainers/internal/usecase"
)

func newReposCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Repository inventory of the GitHub organizations",
	}
	cmd.AddCommand(newReposListCmd(a))
	return cmd
}

func newReposListCmd(a *app) *cobra.Command {
	var orgs []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the maintained repositories of the configured organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			selected := splitList(orgs)
			if len(selected) == 0 {
				selected = c.cfg.Organizations
			}
			c.printer.Note("Fetching repository list...")
			uc := &usecase.ListRepositoriesUseCase{
				GithubRepo: c.ghRepo,
				Blocklist:  c.cfg.RepositoryBlocklist,
				Acceptlist: c.cfg.RepositoryAcceptlist,
				Prefix:     c.cfg.RepositoryPrefix,
			}
			names, err := uc.Execute(cmd.Context(), selected)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&orgs, "org", nil, "Organization to list; repeatable (default: configured organizations)")
	return cmd
}
