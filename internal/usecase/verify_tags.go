package usecase

import (
	"context"

	"github.com/zendframework/maintainers/internal/repository"
)

// TagStatus is the result of looking up a tag in one component repository.
type TagStatus struct {
	Component string
	Exists    bool
	Err       error
}

// VerifyTagsUseCase checks that a release tag was pushed for every component.
type VerifyTagsUseCase struct {
	GithubRepo repository.GithubRepository
	Owner      string
}

// Execute looks up tag in each component; lookup failures are reported per component.
func (uc *VerifyTagsUseCase) Execute(ctx context.Context, components []string, tag string) []TagStatus {
	statuses := make([]TagStatus, 0, len(components))
	for _, component := range components {
		if ctx.Err() != nil {
			statuses = append(statuses, TagStatus{Component: component, Err: ctx.Err()})
			continue
		}
		exists, err := uc.GithubRepo.TagExists(ctx, uc.Owner, component, tag)
		statuses = append(statuses, TagStatus{Component: component, Exists: exists, Err: err})
	}
	return statuses
}
