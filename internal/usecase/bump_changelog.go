package usecase

import (
	"context"

	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
)

// BumpChangelogUseCase opens a "<version> - TBD" section in CHANGELOG.md.
type BumpChangelogUseCase struct {
	FS           repository.FileSystemRepository
	ChangelogSvc service.ChangelogService
}

// Execute runs the use case.
func (uc *BumpChangelogUseCase) Execute(_ context.Context, path, version string) error {
	return rewriteFile(uc.FS, path, func(contents string) (string, error) {
		return uc.ChangelogSvc.AddDevelopmentSection(contents, version)
	})
}
