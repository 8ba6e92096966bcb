package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/repository"
)

// DetectVersionUseCase finds the latest released version of a minor line in a checkout.
type DetectVersionUseCase struct {
	GitRepo repository.GitRepository
	Logger  *zap.Logger
}

// Execute returns known unchanged when it already names a concrete version,
// that is when it differs from the minor line itself. Otherwise it returns the
// highest release-<minor>.N tag, or <minor>.0 when there is none. Listing
// failures are logged and treated as "no tags".
func (uc *DetectVersionUseCase) Execute(ctx context.Context, known string, line domain.MinorVersion) string {
	if known != "" && known != line.String() {
		return known
	}
	tags, err := uc.GitRepo.ListTags(ctx)
	if err != nil {
		uc.Logger.Warn("failed to list tags, assuming initial release",
			zap.String("dir", uc.GitRepo.Dir()),
			zap.Error(err),
		)
		return line.Initial().String()
	}
	latest, ok := domain.LatestForLine(tags, line)
	if !ok {
		return line.Initial().String()
	}
	return latest.String()
}
