package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/output"
	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
	"github.com/zendframework/maintainers/internal/usecase"
)

// ChangelogBumpConfig contains the input of a changelog bump.
type ChangelogBumpConfig struct {
	Version string
	Base    string
	Dir     string
}

// ChangelogBumpOrchestrator opens the next development version in CHANGELOG.md
// on a version/bump branch.
type ChangelogBumpOrchestrator struct {
	gitFactory   repository.GitRepositoryFactory
	fsRepo       repository.FileSystemRepository
	changelogSvc service.ChangelogService
	printer      *output.Printer
	logger       *zap.Logger
}

// NewChangelogBumpOrchestrator creates a new changelog bump orchestrator.
func NewChangelogBumpOrchestrator(
	gitFactory repository.GitRepositoryFactory,
	fsRepo repository.FileSystemRepository,
	printer *output.Printer,
	logger *zap.Logger,
) *ChangelogBumpOrchestrator {
	return &ChangelogBumpOrchestrator{
		gitFactory:   gitFactory,
		fsRepo:       fsRepo,
		changelogSvc: service.NewChangelogService(),
		printer:      printer,
		logger:       logger.Named("changelog"),
	}
}

// Execute creates the branch, adds the section and commits it.
func (o *ChangelogBumpOrchestrator) Execute(ctx context.Context, cfg ChangelogBumpConfig) error {
	if cfg.Base == "" {
		cfg.Base = BumpBaseBranches[0]
	}
	if err := ValidateBumpVersion(cfg.Version); err != nil {
		return err
	}
	if err := ValidateBaseBranch(cfg.Base); err != nil {
		return err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	git := o.gitFactory(dir)

	executor := NewStepExecutor(o.logger)
	executor.AddStep(Step{
		Name: "create bump branch",
		Type: domain.StepTypeCreateBranch,
		Execute: func(ctx context.Context) error {
			return git.CreateBranch(ctx, VersionBumpBranch, cfg.Base)
		},
		OnFailure: func(error) {
			o.printer.Error("Could not create new %s branch based on branch %s!", VersionBumpBranch, cfg.Base)
		},
	})
	executor.AddStep(Step{
		Name: "update changelog",
		Type: domain.StepTypeUpdateChangelog,
		Execute: func(ctx context.Context) error {
			uc := &usecase.BumpChangelogUseCase{FS: o.fsRepo, ChangelogSvc: o.changelogSvc}
			return uc.Execute(ctx, filepath.Join(dir, ChangelogFile), cfg.Version)
		},
		OnFailure: func(err error) {
			o.printer.Error("Could not update %s: %v", ChangelogFile, err)
		},
	})
	executor.AddStep(Step{
		Name: "commit version bump",
		Type: domain.StepTypeCommitChanges,
		Execute: func(ctx context.Context) error {
			return git.CommitAll(ctx, fmt.Sprintf("Bumped to next dev version (%s)", cfg.Version))
		},
		OnFailure: func(error) {
			o.printer.Error("Could not commit version bump changes!")
		},
	})
	if err := executor.Execute(ctx); err != nil {
		return fmt.Errorf("changelog bump to %s failed: %w", cfg.Version, err)
	}

	merge := fmt.Sprintf("Please verify and merge the branch back to %s", cfg.Base)
	if cfg.Base == "master" {
		merge += " as well as develop"
	}
	o.printer.Info("%s", merge)
	o.printer.Info("Once done merging, remove this branch using:")
	o.printer.Println("    git branch -d %s", VersionBumpBranch)
	return nil
}
