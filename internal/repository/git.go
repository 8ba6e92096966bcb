package repository

import "context"

// GitRepository is a handle on one local checkout. Mutations shell out to the
// git binary so signing, hooks and user configuration behave as they do for the
// operator; reads are served by go-git.
type GitRepository interface {
	Dir() string
	CreateBranch(ctx context.Context, name, from string) error
	Checkout(ctx context.Context, ref string) error
	CommitAll(ctx context.Context, message string) error
	CreateSignedTag(ctx context.Context, tag, message string) error
	DeleteBranch(ctx context.Context, name string) error
	ApplyMailbox(ctx context.Context, patch []byte) error
	ListTags(ctx context.Context) ([]string, error)
	LogOneline(ctx context.Context, from, to string) (string, error)
}

// GitRepositoryFactory opens a handle for the checkout at dir.
type GitRepositoryFactory func(dir string) GitRepository
