package usecase

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/zendframework/maintainers/internal/repository"
)

// PatchError identifies the patch that could not be applied.
type PatchError struct {
	Patch string
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("failed to apply patch %s: %v", e.Patch, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

// ApplyPatchesUseCase applies mailbox patches in order.
type ApplyPatchesUseCase struct {
	GitRepo repository.GitRepository
	FS      repository.FileSystemRepository
}

// Execute stops at the first patch that fails to apply.
func (uc *ApplyPatchesUseCase) Execute(ctx context.Context, patches []string) error {
	for _, patch := range patches {
		data, err := afero.ReadFile(uc.FS, patch)
		if err != nil {
			return &PatchError{Patch: patch, Err: fmt.Errorf("failed to read patch: %w", err)}
		}
		if err := uc.GitRepo.ApplyMailbox(ctx, data); err != nil {
			return &PatchError{Patch: patch, Err: err}
		}
	}
	return nil
}
