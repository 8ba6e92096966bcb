package usecase

import (
	"context"

	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
)

// UpdateVersionConstantUseCase rewrites the VERSION constant of a class file.
type UpdateVersionConstantUseCase struct {
	FS         repository.FileSystemRepository
	VersionSvc service.VersionConstantService
}

// Execute runs the use case.
func (uc *UpdateVersionConstantUseCase) Execute(_ context.Context, path, version string) error {
	return rewriteFile(uc.FS, path, func(contents string) (string, error) {
		return uc.VersionSvc.Replace(contents, version)
	})
}
