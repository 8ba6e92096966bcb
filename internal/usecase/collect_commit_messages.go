package usecase

import (
	"context"
	"fmt"

	"github.com/zendframework/maintainers/internal/repository"
	"github.com/zendframework/maintainers/internal/service"
)

// CollectCommitMessagesUseCase summarizes the commits made since a tag.
type CollectCommitMessagesUseCase struct {
	GitRepo    repository.GitRepository
	SummarySvc service.CommitSummaryService
}

// Execute returns a markdown bullet list of the commits in since..HEAD.
func (uc *CollectCommitMessagesUseCase) Execute(ctx context.Context, since string) (string, error) {
	log, err := uc.GitRepo.LogOneline(ctx, since, "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to retrieve commit messages since %s: %w", since, err)
	}
	return uc.SummarySvc.Bullets(log), nil
}
