package usecase

import (
	"context"
	"time"

	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
)

// UpdateChangelogUseCase prepends a release section to CHANGELOG.md.
type UpdateChangelogUseCase struct {
	FS           repository.FileSystemRepository
	ChangelogSvc service.ChangelogService
	Now          func() time.Time
}

// Execute runs the use case.
func (uc *UpdateChangelogUseCase) Execute(_ context.Context, path, version, entries string) error {
	return rewriteFile(uc.FS, path, func(contents string) (string, error) {
		return uc.ChangelogSvc.PrependRelease(contents, version, now(uc.Now), entries)
	})
}
