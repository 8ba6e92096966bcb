package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const shortHashLength = 7

type gitRepository struct {
	dir    string
	runner CommandRunner
}

// NewGitRepository returns a handle on the checkout at dir.
func NewGitRepository(dir string, runner CommandRunner) GitRepository {
	return &gitRepository{dir: dir, runner: runner}
}

// NewGitRepositoryFactory binds every handle it opens to runner.
func NewGitRepositoryFactory(runner CommandRunner) GitRepositoryFactory {
	return func(dir string) GitRepository {
		return NewGitRepository(dir, runner)
	}
}

func (r *gitRepository) Dir() string {
	return r.dir
}

func (r *gitRepository) git(ctx context.Context, stdin []byte, args ...string) error {
	_, err := RunChecked(ctx, r.runner, Command{Dir: r.dir, Name: "git", Args: args, Stdin: stdin})
	return err
}

// CreateBranch creates name from the from ref and checks it out.
func (r *gitRepository) CreateBranch(ctx context.Context, name, from string) error {
	return r.git(ctx, nil, "checkout", "-b", name, from)
}

func (r *gitRepository) Checkout(ctx context.Context, ref string) error {
	return r.git(ctx, nil, "checkout", ref)
}

// CommitAll commits every tracked modification.
func (r *gitRepository) CommitAll(ctx context.Context, message string) error {
	return r.git(ctx, nil, "commit", "-a", "-m", message)
}

func (r *gitRepository) CreateSignedTag(ctx context.Context, tag, message string) error {
	return r.git(ctx, nil, "tag", "-s", "-m", message, tag)
}

// DeleteBranch force-deletes a local branch.
func (r *gitRepository) DeleteBranch(ctx context.Context, name string) error {
	return r.git(ctx, nil, "branch", "-D", name)
}

// ApplyMailbox applies a mailbox-formatted patch on top of the current branch.
func (r *gitRepository) ApplyMailbox(ctx context.Context, patch []byte) error {
	return r.git(ctx, patch, "am")
}

func (r *gitRepository) open() (*git.Repository, error) {
	repo, err := git.PlainOpen(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository %s: %w", r.dir, err)
	}
	return repo, nil
}

// ListTags returns the short names of all tags in the checkout.
func (r *gitRepository) ListTags(_ context.Context) ([]string, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var tags []string
	if err := refs.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// LogOneline lists the commits reachable from to but not from from, newest
// first, one "<short sha> <subject>" line each.
func (r *gitRepository) LogOneline(_ context.Context, from, to string) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	fromHash, err := resolveCommit(repo, from)
	if err != nil {
		return "", err
	}
	toHash, err := resolveCommit(repo, to)
	if err != nil {
		return "", err
	}
	excluded := map[plumbing.Hash]bool{}
	base, err := repo.Log(&git.LogOptions{From: fromHash})
	if err != nil {
		return "", fmt.Errorf("failed to walk %s: %w", from, err)
	}
	if err := base.ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return nil
	}); err != nil {
		return "", fmt.Errorf("failed to walk %s: %w", from, err)
	}
	head, err := repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", fmt.Errorf("failed to walk %s: %w", to, err)
	}
	var b strings.Builder
	err = head.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		subject := strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0]
		fmt.Fprintf(&b, "%s %s\n", c.Hash.String()[:shortHashLength], subject)
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return "", fmt.Errorf("failed to iterate commits: %w", err)
	}
	return b.String(), nil
}

// resolveCommit resolves a tag, branch or revision to the commit it points at,
// peeling annotated tags.
func resolveCommit(repo *git.Repository, ref string) (plumbing.Hash, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.NewTagReferenceName(ref),
		plumbing.NewBranchReferenceName(ref),
	}
	for _, name := range candidates {
		r, err := repo.Reference(name, true)
		if err != nil {
			continue
		}
		return peel(repo, r.Hash())
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return peel(repo, *hash)
}

func peel(repo *git.Repository, hash plumbing.Hash) (plumbing.Hash, error) {
	if _, err := repo.CommitObject(hash); err == nil {
		return hash, nil
	}
	tag, err := repo.TagObject(hash)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve commit %s: %w", hash, err)
	}
	commit, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve tagged commit %s: %w", hash, err)
	}
	return commit.Hash, nil
}
