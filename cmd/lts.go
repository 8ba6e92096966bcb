package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zendframework/maintainers/internal/orchestrator"
	"github.com/zendframework/maintainers/internal/service"
	"github.com/zendframework/maintainers/internal/usecase"
)

func newLtsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lts",
		Short: "Long-term support release tooling",
	}
	cmd.AddCommand(
		newLtsReleaseCmd(a),
		newLtsStageCmd(a),
		newLtsComponentsCmd(a),
		newLtsPatchCmd(a),
		newLtsReportCmd(a),
		newLtsVerifyCmd(a),
	)
	return cmd
}

func newLtsReleaseCmd(a *app) *cobra.Command {
	var (
		excludes []string
		basePath string
		current  string
	)
	cmd := &cobra.Command{
		Use:   "release <minor>",
		Short: "Tag a new maintenance release of every LTS component",
		Long: `Tag a new LTS maintenance release of every component.

For each component checkout below the base path this command creates a release
branch based off the latest maintenance release of the given minor version
(or the integration branch when there is none yet), tags the next patch
release with a signed tag and removes the branch again.

Use this only for components with no changes; pass the components that had
changes with --exclude.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			orch := orchestrator.NewBatchReleaseOrchestrator(
				c.gitFactory,
				c.fsRepo,
				c.reportRepo,
				c.cfg,
				c.printer,
				c.logger,
			)
			_, err = orch.Execute(cmd.Context(), orchestrator.BatchReleaseConfig{
				Minor:        args[0],
				Excludes:     splitList(excludes),
				BasePath:     basePath,
				StartVersion: current,
			})
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&excludes, "exclude", "e", nil,
		"Component to exclude from the release; repeatable or comma-separated")
	cmd.Flags().StringVarP(&basePath, "base-path", "b", ".", "Path to the component checkouts")
	cmd.Flags().StringVar(&current, "current", "", "Version to start from instead of detecting it from tags")
	return cmd
}

func newLtsStageCmd(a *app) *cobra.Command {
	var (
		patches []string
		dir     string
	)
	cmd := &cobra.Command{
		Use:   "stage <minor>",
		Short: "Stage a new LTS release of the framework from patch files",
		Long: `Stage a new LTS release of the monolithic framework repository.

Creates the release branch from the latest tag of the given minor version,
applies the patch files in the order provided, updates the VERSION constant,
README.md and CHANGELOG.md, and commits the result. The signed tag command is
printed for review; it is never run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			orch := orchestrator.NewStageReleaseOrchestrator(c.gitFactory, c.fsRepo, c.cfg, c.printer, c.logger)
			_, err = orch.Execute(cmd.Context(), orchestrator.StageReleaseConfig{
				Minor:   args[0],
				Patches: patches,
				Dir:     dir,
			})
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&patches, "patchfile", "p", nil, "Patch file to apply; repeatable, applied in order")
	cmd.Flags().StringVar(&dir, "dir", ".", "Path to the framework checkout")
	return cmd
}

func newLtsComponentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the LTS components, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, component := range c.cfg.Components {
				fmt.Fprintln(out, component)
			}
			return nil
		},
	}
}

func newLtsPatchCmd(a *app) *cobra.Command {
	var (
		patchfile string
		target    string
		component string
	)
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Rewrite a component patch so it applies to the framework repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			if err := orchestrator.ValidatePatchFile(c.fsRepo, patchfile); err != nil {
				return err
			}
			if err := orchestrator.ValidatePatchTarget(c.fsRepo, target); err != nil {
				return err
			}
			if err := orchestrator.ValidateComponentName(component); err != nil {
				return err
			}
			uc := &usecase.RewritePatchUseCase{FS: c.fsRepo, PatchSvc: service.NewPatchRewriteService()}
			if err := uc.Execute(cmd.Context(), component, patchfile, target); err != nil {
				return err
			}
			c.printer.Note("Rewrote %s patch %s to %s", component, patchfile, target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&patchfile, "patchfile", "p", "", "Component patch to rewrite")
	cmd.Flags().StringVarP(&target, "target", "t", "", "File to write the rewritten patch to")
	cmd.Flags().StringVarP(&component, "component", "c", "", "Component the patch was made against, e.g. zend-view")
	return cmd
}
