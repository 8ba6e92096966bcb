package repository

import (
	"context"
	"errors"
	"fmt"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct{}

// NewGithubNoopRepository returns a repository that refuses every call.
func NewGithubNoopRepository() GithubRepository {
	return &githubNoopRepository{}
}

func (r *githubNoopRepository) ListOrganizationRepositories(_ context.Context, org string) ([]string, error) {
	return nil, fmt.Errorf("%w: unable to list repositories of %s", ErrGithubTokenRequired, org)
}

func (r *githubNoopRepository) TagExists(_ context.Context, owner, repo, tag string) (bool, error) {
	return false, fmt.Errorf("%w: unable to look up %s in %s/%s", ErrGithubTokenRequired, tag, owner, repo)
}
