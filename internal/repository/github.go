package repository

import "context"

// GithubRepository defines the GitHub API operations used by the toolkit.
type GithubRepository interface {
	// ListOrganizationRepositories returns the "owner/name" of every repository in org.
	ListOrganizationRepositories(ctx context.Context, org string) ([]string, error)
	TagExists(ctx context.Context, owner, repo, tag string) (bool, error)
}
