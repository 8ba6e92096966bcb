package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) Dir() string {
	return "/work/component"
}
func (m *mockGitRepository) CreateBranch(ctx context.Context, name, from string) error {
	args := m.Called(ctx, name, from)
	return args.Error(0)
}
func (m *mockGitRepository) Checkout(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
func (m *mockGitRepository) CommitAll(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *mockGitRepository) CreateSignedTag(ctx context.Context, tag, message string) error {
	args := m.Called(ctx, tag, message)
	return args.Error(0)
}
func (m *mockGitRepository) DeleteBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *mockGitRepository) ApplyMailbox(ctx context.Context, patch []byte) error {
	args := m.Called(ctx, patch)
	return args.Error(0)
}
func (m *mockGitRepository) ListTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]string)
	return tags, args.Error(1)
}
func (m *mockGitRepository) LogOneline(ctx context.Context, from, to string) (string, error) {
	args := m.Called(ctx, from, to)
	return args.String(0), args.Error(1)
}

type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) ListOrganizationRepositories(ctx context.Context, org string) ([]string, error) {
	args := m.Called(ctx, org)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}
func (m *mockGithubRepository) TagExists(ctx context.Context, owner, repo, tag string) (bool, error) {
	args := m.Called(ctx, owner, repo, tag)
	return args.Bool(0), args.Error(1)
}
