package cmd

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/orchestrator"
	"github.com/zendframework/maintainers/internal/output"
	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/usecase"
)

func newLtsReportCmd(a *app) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show what a previous lts release run did",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			var report *domain.RunReport
			if sessionID == "" {
				report, err = c.reportRepo.LoadLatest(cmd.Context())
			} else {
				report, err = c.reportRepo.Load(cmd.Context(), sessionID)
			}
			if errors.Is(err, repository.ErrReportNotFound) {
				return fmt.Errorf("no run report available: %w", err)
			}
			if err != nil {
				return err
			}
			c.printer.Info("Session %s", report.SessionID)
			c.printer.Println("%s %s in %s, started %s, %s",
				report.Command, report.Minor, report.BasePath,
				report.StartedAt.Format(time.RFC3339), report.Status)
			c.printer.Table(output.ReportHeaders, output.ReportRows(report))
			c.printer.Println("tagged: %d, skipped: %d, missing: %d, failed: %d",
				report.CountByStatus(domain.OutcomeStatusTagged),
				report.CountByStatus(domain.OutcomeStatusSkipped),
				report.CountByStatus(domain.OutcomeStatusMissingCheckout),
				report.CountByStatus(domain.OutcomeStatusFailed),
			)
			for _, tag := range report.CreatedTags() {
				c.printer.Println("created %s", tag)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Session id of the run (default: latest run)")
	return cmd
}

func newLtsVerifyCmd(a *app) *cobra.Command {
	var excludes []string
	cmd := &cobra.Command{
		Use:   "verify <version>",
		Short: "Check on GitHub that every LTS component has the release tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseVersion(args[0])
			if err != nil {
				return fmt.Errorf("%w: invalid version provided: %q", orchestrator.ErrInvalidArgument, args[0])
			}
			c, err := a.container(cmd)
			if err != nil {
				return err
			}
			excluded := splitList(excludes)
			for _, name := range excluded {
				if !c.cfg.HasComponent(name) {
					c.printer.Warn("Excluded component %q is not an LTS component", name)
				}
			}
			components := slices.DeleteFunc(slices.Clone(c.cfg.Components), func(component string) bool {
				return slices.Contains(excluded, component)
			})
			uc := &usecase.VerifyTagsUseCase{GithubRepo: c.ghRepo, Owner: c.cfg.GithubOwner}
			statuses := uc.Execute(cmd.Context(), components, v.Tag())

			rows := make([][]string, 0, len(statuses))
			problems := 0
			for _, s := range statuses {
				state := "present"
				switch {
				case s.Err != nil:
					state = "error: " + s.Err.Error()
					problems++
				case !s.Exists:
					state = "missing"
					problems++
				}
				rows = append(rows, []string{s.Component, v.Tag(), state})
			}
			c.printer.Table([]string{"Component", "Tag", "State"}, rows)
			if problems > 0 {
				return fmt.Errorf("%d of %d components are missing %s", problems, len(statuses), v.Tag())
			}
			c.printer.Done("All %d components have %s", len(statuses), v.Tag())
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&excludes, "exclude", "e", nil, "Component to skip; repeatable or comma-separated")
	return cmd
}
