package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/config"
	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/output"
	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
	"github.com/zendframework/maintainers/internal/usecase"
)

// BatchReleaseCommand names batch runs in their reports.
const BatchReleaseCommand = "lts release"

// BatchReleaseConfig contains the input of a batch release run.
type BatchReleaseConfig struct {
	Minor    string
	Excludes []string
	BasePath string
	// StartVersion seeds the running version instead of the minor line.
	StartVersion string
}

// BatchReleaseOrchestrator tags every configured component checkout under a
// base path with the next release of a minor line.
type BatchReleaseOrchestrator struct {
	gitFactory repository.GitRepositoryFactory
	fsRepo     repository.FileSystemRepository
	reportRepo repository.ReportRepository
	versionSvc service.VersionConstantService
	cfg        *config.Config
	printer    *output.Printer
	logger     *zap.Logger
}

// NewBatchReleaseOrchestrator creates a new batch release orchestrator.
func NewBatchReleaseOrchestrator(
	gitFactory repository.GitRepositoryFactory,
	fsRepo repository.FileSystemRepository,
	reportRepo repository.ReportRepository,
	cfg *config.Config,
	printer *output.Printer,
	logger *zap.Logger,
) *BatchReleaseOrchestrator {
	return &BatchReleaseOrchestrator{
		gitFactory: gitFactory,
		fsRepo:     fsRepo,
		reportRepo: reportRepo,
		versionSvc: service.NewVersionConstantService(),
		cfg:        cfg,
		printer:    printer,
		logger:     logger.Named("batch"),
	}
}

// Execute runs the batch. Failures of single components are printed and
// recorded in the report; only invalid input and cancellation return an error.
func (o *BatchReleaseOrchestrator) Execute(ctx context.Context, cfg BatchReleaseConfig) (*domain.RunReport, error) {
	ctx, cancel := context.WithTimeout(ctx, BatchWorkflowTimeout)
	defer cancel()
	line, err := ValidateMinorVersion(cfg.Minor)
	if err != nil {
		return nil, err
	}
	if err := ValidateBasePath(o.fsRepo, cfg.BasePath); err != nil {
		return nil, err
	}
	for _, excluded := range cfg.Excludes {
		if !o.cfg.HasComponent(excluded) {
			o.printer.Warn("Excluded component %q is not an LTS component", excluded)
		}
	}
	report := domain.NewRunReport(repository.NewSessionID(), BatchReleaseCommand, cfg.Minor, cfg.BasePath)
	memo := domain.NewVersionIncrementMemo()
	running := cfg.StartVersion
	if running == "" {
		running = line.String()
	}
	var runErr error
	for _, component := range o.cfg.Components {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("batch release interrupted before %s: %w", component, err)
			break
		}
		if slices.Contains(cfg.Excludes, component) {
			o.printer.Skip(component)
			report.AddOutcome(domain.ComponentOutcome{Component: component, Status: domain.OutcomeStatusSkipped})
			continue
		}
		o.printer.Start(component)
		dir := filepath.Join(cfg.BasePath, component)
		if ok, _ := afero.DirExists(o.fsRepo, dir); !ok {
			o.printer.Error("Component directory for %q does not exist!", component)
			report.AddOutcome(domain.ComponentOutcome{
				Component: component,
				Status:    domain.OutcomeStatusMissingCheckout,
				Error:     fmt.Sprintf("directory %s does not exist", dir),
			})
			continue
		}
		outcome, detected := o.tagComponent(ctx, component, dir, line, running, memo)
		if detected != "" {
			running = detected
		}
		report.AddOutcome(outcome)
	}
	report.Complete()
	o.printSummary(report)
	o.saveReport(ctx, report)
	return report, runErr
}

// tagComponent returns the outcome and the detected pre-increment version,
// which becomes the running version whether or not tagging succeeded.
func (o *BatchReleaseOrchestrator) tagComponent(
	ctx context.Context,
	component, dir string,
	line domain.MinorVersion,
	running string,
	memo domain.VersionIncrementMemo,
) (domain.ComponentOutcome, string) {
	git := o.gitFactory(dir)
	logger := o.logger.With(zap.String("component", component))
	detect := &usecase.DetectVersionUseCase{GitRepo: git, Logger: logger}
	detected := detect.Execute(ctx, running, line)
	o.printer.Note("Detected version: %s", detected)
	outcome := domain.ComponentOutcome{Component: component, DetectedVersion: detected}
	plan, err := domain.PlanRelease(detected, line, o.cfg.IntegrationBranch, memo)
	if err != nil {
		o.printer.ComponentError(component, "Invalid version detected: %s; cannot proceed", detected)
		outcome.Status = domain.OutcomeStatusFailed
		outcome.Error = err.Error()
		return outcome, ""
	}
	outcome.NewVersion = plan.Next.String()
	outcome.BaseRef = plan.BaseRef
	outcome.Branch = plan.Branch
	logger.Debug("release planned",
		zap.Stringer("current", plan.Current),
		zap.Stringer("next", plan.Next),
		zap.String("base", plan.BaseRef),
		zap.String("branch", plan.Branch),
	)

	executor := NewStepExecutor(logger)
	o.addSteps(executor, git, component, dir, plan)
	execErr := executor.Execute(ctx)
	outcome.Steps = executor.Records()
	outcome.Warnings = executor.Warnings()
	outcome.Status = domain.OutcomeStatusFailed
	if stepCompleted(outcome.Steps, domain.StepTypeCreateTag) {
		outcome.Status = domain.OutcomeStatusTagged
		o.printer.DoneVerbose("%s tagged at version %s", component, plan.Next)
	}
	if execErr != nil {
		outcome.Error = execErr.Error()
	}
	return outcome, plan.Current.String()
}

func (o *BatchReleaseOrchestrator) addSteps(
	executor *StepExecutor,
	git repository.GitRepository,
	component, dir string,
	plan domain.ReleasePlan,
) {
	next := plan.Next.String()
	executor.AddStep(Step{
		Name: "create release branch",
		Type: domain.StepTypeCreateBranch,
		Execute: func(ctx context.Context) error {
			uc := &usecase.CreateReleaseBranchUseCase{GitRepo: git}
			return uc.Execute(ctx, plan.Branch, plan.BaseRef)
		},
		OnFailure: func(error) {
			o.printer.ComponentError(component, "Could not checkout new branch %q from base %q!", plan.Branch, plan.BaseRef)
		},
	})
	if component == o.cfg.VersionComponent {
		executor.AddStep(Step{
			Name: "update version class",
			Type: domain.StepTypeUpdateVersionFile,
			Execute: func(ctx context.Context) error {
				uc := &usecase.UpdateVersionConstantUseCase{FS: o.fsRepo, VersionSvc: o.versionSvc}
				if err := uc.Execute(ctx, filepath.Join(dir, o.cfg.BatchVersionFile), next); err != nil {
					return err
				}
				return git.CommitAll(ctx, fmt.Sprintf("Bump to version %s", next))
			},
			OnFailure: func(err error) {
				var cmdErr *repository.CommandError
				if errors.As(err, &cmdErr) {
					o.printer.ComponentError(component, "Could not commit updated Version class!")
					return
				}
				o.printer.ComponentError(component, "Could not update Version class: %v", err)
			},
		})
	}
	executor.AddStep(Step{
		Name: "create tag",
		Type: domain.StepTypeCreateTag,
		Execute: func(ctx context.Context) error {
			return git.CreateSignedTag(ctx, plan.Tag(), fmt.Sprintf("%s %s", component, next))
		},
		OnFailure: func(error) {
			o.printer.ComponentError(component, "Could not tag new release %q!", next)
		},
	})
	executor.AddStep(Step{
		Name: "checkout mainline",
		Type: domain.StepTypeCheckoutMainline,
		Execute: func(ctx context.Context) error {
			return git.Checkout(ctx, o.cfg.MainlineBranch)
		},
		OnFailure: func(error) {
			o.printer.ComponentError(component, "Could not checkout %s on completion!", o.cfg.MainlineBranch)
		},
	})
	executor.AddStep(Step{
		Name:     "delete release branch",
		Type:     domain.StepTypeDeleteBranch,
		WarnOnly: true,
		Execute: func(ctx context.Context) error {
			return git.DeleteBranch(ctx, plan.Branch)
		},
		OnFailure: func(error) {
			o.printer.ComponentError(component, "Could not remove branch %q on completion!", plan.Branch)
		},
	})
}

func (o *BatchReleaseOrchestrator) printSummary(report *domain.RunReport) {
	o.printer.Blank()
	tags := report.CreatedTags()
	switch len(tags) {
	case 0:
		o.printer.Done("No release tags were created.")
		return
	case 1:
		o.printer.Done("Please verify tags and push the following tag:")
	default:
		o.printer.Warn("Components were tagged at %d different versions.", len(tags))
		o.printer.Done("Please verify tags and push the following tags:")
	}
	for _, tag := range tags {
		o.printer.Println("       %s", tag)
	}
}

func (o *BatchReleaseOrchestrator) saveReport(ctx context.Context, report *domain.RunReport) {
	if err := o.reportRepo.Save(context.WithoutCancel(ctx), report); err != nil {
		o.logger.Warn("failed to save run report", zap.String("session_id", report.SessionID), zap.Error(err))
		return
	}
	o.printer.Note("Run report saved as session %s", report.SessionID)
}

func stepCompleted(records []domain.StepRecord, stepType domain.StepType) bool {
	for _, r := range records {
		if r.Type == stepType && r.Status == domain.StepStatusCompleted {
			return true
		}
	}
	return false
}
