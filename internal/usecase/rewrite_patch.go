package usecase

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
)

// RewritePatchUseCase converts a component patch for the monolithic repository.
type RewritePatchUseCase struct {
	FS       repository.FileSystemRepository
	PatchSvc service.PatchRewriteService
}

// Execute reads patchFile and writes the rewritten patch to target.
func (uc *RewritePatchUseCase) Execute(_ context.Context, component, patchFile, target string) error {
	data, err := afero.ReadFile(uc.FS, patchFile)
	if err != nil {
		return fmt.Errorf("failed to read patch %s: %w", patchFile, err)
	}
	return writeFile(uc.FS, target, uc.PatchSvc.Rewrite(component, string(data)), defaultFilePermissions)
}
