package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zendframework/maintainers/internal/domain"
	"github.com/zendframework/maintainers/internal/repository"
)

type mockGitRepository struct {
	mock.Mock
	dir string
}

func (m *mockGitRepository) Dir() string {
	return m.dir
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

// gitRepositories hands out one mock per checkout directory.
type gitRepositories map[string]*mockGitRepository

func (g gitRepositories) add(dir string) *mockGitRepository {
	repo := &mockGitRepository{dir: dir}
	g[dir] = repo
	return repo
}

func (g gitRepositories) factory() repository.GitRepositoryFactory {
	return func(dir string) repository.GitRepository {
		repo, ok := g[dir]
		if !ok {
			panic("unexpected checkout " + dir)
		}
		return repo
	}
}

func (g gitRepositories) assertExpectations(t mock.TestingT) {
	for _, repo := range g {
		repo.AssertExpectations(t)
	}
}

type mockReportRepository struct{ mock.Mock }

func (m *mockReportRepository) Save(ctx context.Context, report *domain.RunReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
func (m *mockReportRepository) Load(ctx context.Context, sessionID string) (*domain.RunReport, error) {
	args := m.Called(ctx, sessionID)
	report, _ := args.Get(0).(*domain.RunReport)
	return report, args.Error(1)
}
func (m *mockReportRepository) LoadLatest(ctx context.Context) (*domain.RunReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*domain.RunReport)
	return report, args.Error(1)
}
