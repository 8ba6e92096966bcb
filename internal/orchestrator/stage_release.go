package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/config"
	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/output"
	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
	"github.com/zendframework/maintainers/internal/usecase"
)

// StageReleaseConfig contains the input of a staging run.
type StageReleaseConfig struct {
	Minor   string
	Patches []string
	// Dir is the monolithic repository checkout, defaulting to the working directory.
	Dir string
}

// StageResult describes a staged release. The tag itself is left to the maintainer.
type StageResult struct {
	Current    domain.Version
	Next       domain.Version
	Branch     string
	Changes    string
	TagCommand string
	Steps      []domain.StepRecord
}

// StageReleaseOrchestrator prepares a release branch of the monolithic
// repository from a set of patches.
type StageReleaseOrchestrator struct {
	gitFactory   repository.GitRepositoryFactory
	fsRepo       repository.FileSystemRepository
	versionSvc   service.VersionConstantService
	readmeSvc    service.ReadmeService
	changelogSvc service.ChangelogService
	summarySvc   service.CommitSummaryService
	cfg          *config.Config
	printer      *output.Printer
	logger       *zap.Logger
	now          func() time.Time
}

// NewStageReleaseOrchestrator creates a new stage release orchestrator.
func NewStageReleaseOrchestrator(
	gitFactory repository.GitRepositoryFactory,
	fsRepo repository.FileSystemRepository,
	cfg *config.Config,
	printer *output.Printer,
	logger *zap.Logger,
) *StageReleaseOrchestrator {
	return &StageReleaseOrchestrator{
		gitFactory:   gitFactory,
		fsRepo:       fsRepo,
		versionSvc:   service.NewVersionConstantService(),
		readmeSvc:    service.NewReadmeService(),
		changelogSvc: service.NewChangelogService(),
		summarySvc:   service.NewCommitSummaryService(),
		cfg:          cfg,
		printer:      printer,
		logger:       logger.Named("stage"),
		now:          time.Now,
	}
}

// Execute stages the next release of the minor line. Any failure aborts the run.
func (o *StageReleaseOrchestrator) Execute(ctx context.Context, cfg StageReleaseConfig) (*StageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, StageWorkflowTimeout)
	defer cancel()
	line, err := ValidateMinorVersion(cfg.Minor)
	if err != nil {
		return nil, err
	}
	if err := ValidatePatchFiles(o.fsRepo, cfg.Patches); err != nil {
		return nil, err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	git := o.gitFactory(dir)

	detect := &usecase.DetectVersionUseCase{GitRepo: git, Logger: o.logger}
	current, err := domain.ParseVersion(detect.Execute(ctx, line.String(), line))
	if err != nil {
		return nil, fmt.Errorf("failed to detect current version: %w", err)
	}
	next := domain.Increment(current)
	o.printer.Note("Staging %s from %s", next, current.Tag())
	result := &StageResult{Current: current, Next: next, Branch: line.BranchName()}

	executor := NewStepExecutor(o.logger)
	o.addSteps(executor, git, dir, line, cfg.Patches, result)
	err = executor.Execute(ctx)
	result.Steps = executor.Records()
	if err != nil {
		return result, fmt.Errorf("staging %s failed: %w", next, err)
	}

	result.TagCommand = fmt.Sprintf("git tag -s -m \"%s %s\n\n%s\" %s",
		o.cfg.ReleaseTitle, next, result.Changes, next.Tag())
	o.printer.Done("Please verify the patch, and then execute:")
	o.printer.Println("    %s", result.TagCommand)
	return result, nil
}

func (o *StageReleaseOrchestrator) addSteps(
	executor *StepExecutor,
	git repository.GitRepository,
	dir string,
	line domain.MinorVersion,
	patches []string,
	result *StageResult,
) {
	current := result.Current
	next := result.Next.String()
	executor.AddStep(Step{
		Name: "create release branch",
		Type: domain.StepTypeCreateBranch,
		Execute: func(ctx context.Context) error {
			uc := &usecase.CreateReleaseBranchUseCase{GitRepo: git}
			return uc.Execute(ctx, result.Branch, current.Tag())
		},
		OnFailure: func(error) {
			o.printer.Error("Could not create new branch %s based on tag %s!", result.Branch, current.Tag())
		},
	})
	executor.AddStep(Step{
		Name: "apply patches",
		Type: domain.StepTypeApplyPatches,
		Execute: func(ctx context.Context) error {
			uc := &usecase.ApplyPatchesUseCase{GitRepo: git, FS: o.fsRepo}
			return uc.Execute(ctx, patches)
		},
		OnFailure: func(err error) {
			var patchErr *usecase.PatchError
			if errors.As(err, &patchErr) {
				o.printer.Error("Could not cleanly apply patchfile %q!", patchErr.Patch)
				return
			}
			o.printer.Error("Could not apply patches: %v", err)
		},
	})
	executor.AddStep(Step{
		Name: "collect patch messages",
		Type: domain.StepTypeCollectMessages,
		Execute: func(ctx context.Context) error {
			uc := &usecase.CollectCommitMessagesUseCase{GitRepo: git, SummarySvc: o.summarySvc}
			changes, err := uc.Execute(ctx, current.Tag())
			result.Changes = changes
			return err
		},
		OnFailure: func(error) {
			o.printer.Error("Could not retrieve patch messages!")
		},
	})
	executor.AddStep(Step{
		Name: "update version class",
		Type: domain.StepTypeUpdateVersionFile,
		Execute: func(ctx context.Context) error {
			uc := &usecase.UpdateVersionConstantUseCase{FS: o.fsRepo, VersionSvc: o.versionSvc}
			return uc.Execute(ctx, filepath.Join(dir, o.cfg.StageVersionFile), next)
		},
		OnFailure: func(err error) {
			o.printer.Error("Could not update Version class: %v", err)
		},
	})
	executor.AddStep(Step{
		Name: "update readme",
		Type: domain.StepTypeUpdateReadme,
		Execute: func(ctx context.Context) error {
			uc := &usecase.UpdateReadmeUseCase{
				FS:           o.fsRepo,
				ReadmeSvc:    o.readmeSvc,
				TemplatePath: o.cfg.ReadmeTemplate,
				Now:          o.now,
			}
			return uc.Execute(ctx, filepath.Join(dir, ReadmeFile), line.String(), next)
		},
		OnFailure: func(err error) {
			o.printer.Error("Could not update %s: %v", ReadmeFile, err)
		},
	})
	executor.AddStep(Step{
		Name: "update changelog",
		Type: domain.StepTypeUpdateChangelog,
		Execute: func(ctx context.Context) error {
			uc := &usecase.UpdateChangelogUseCase{FS: o.fsRepo, ChangelogSvc: o.changelogSvc, Now: o.now}
			return uc.Execute(ctx, filepath.Join(dir, ChangelogFile), next, result.Changes)
		},
		OnFailure: func(err error) {
			o.printer.Error("Could not update %s: %v", ChangelogFile, err)
		},
	})
	executor.AddStep(Step{
		Name: "commit version bump",
		Type: domain.StepTypeCommitChanges,
		Execute: func(ctx context.Context) error {
			return git.CommitAll(ctx, fmt.Sprintf("Prepare for %s", next))
		},
		OnFailure: func(error) {
			o.printer.Error("Could not commit version bump changes!")
		},
	})
}
