package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
)

// UpdateReadmeUseCase regenerates README.md from a template.
type UpdateReadmeUseCase struct {
	FS        repository.FileSystemRepository
	ReadmeSvc service.ReadmeService
	// TemplatePath overrides the embedded template when set.
	TemplatePath string
	Now          func() time.Time
}

// Execute runs the use case.
func (uc *UpdateReadmeUseCase) Execute(_ context.Context, path, minor, version string) error {
	template := service.DefaultReadmeTemplate()
	if uc.TemplatePath != "" {
		data, err := afero.ReadFile(uc.FS, uc.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to read README template: %w", err)
		}
		template = string(data)
	}
	return writeFile(uc.FS, path, uc.ReadmeSvc.Render(template, minor, version, now(uc.Now)), defaultFilePermissions)
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
