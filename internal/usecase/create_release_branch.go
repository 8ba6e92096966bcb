package usecase

import (
	"context"
	"fmt"

	"github.com/zendframework/maintainers/internal/repository"
)

// CreateReleaseBranchUseCase creates and checks out a working branch.
type CreateReleaseBranchUseCase struct {
	GitRepo repository.GitRepository
}

// Execute runs the use case.
func (uc *CreateReleaseBranchUseCase) Execute(ctx context.Context, branch, base string) error {
	if err := uc.GitRepo.CreateBranch(ctx, branch, base); err != nil {
		return fmt.Errorf("failed to create branch %s from %s: %w", branch, base, err)
	}
	return nil
}
