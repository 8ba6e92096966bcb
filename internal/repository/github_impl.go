package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v74/github"
	"github.com/sethvargo/go-retry"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// DefaultHTTPClientTimeout bounds every GitHub API request
	DefaultHTTPClientTimeout = time.Minute
	// DefaultRetryCount is the number of retries for retryable GitHub errors
	DefaultRetryCount = 3
	// DefaultRetryDelay is the initial exponential backoff delay
	DefaultRetryDelay = time.Second

	repositoriesPerPage = 100
)

type githubRepository struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
	backoff    func() retry.Backoff
}

// NewGithubRepository creates an authenticated GitHub client.
func NewGithubRepository(token string, logger *zap.Logger) (GithubRepository, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrGithubTokenRequired
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = DefaultHTTPClientTimeout
	return newGithubRepository(github.NewClient(httpClient), githubv4.NewClient(httpClient), logger), nil
}

func newGithubRepository(rest *github.Client, gql *githubv4.Client, logger *zap.Logger) *githubRepository {
	return &githubRepository{
		restClt:    rest,
		graphQLClt: gql,
		logger:     logger,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
		},
	}
}

type repositoriesQuery struct {
	Organization struct {
		Repositories struct {
			PageInfo struct {
				EndCursor   githubv4.String
				HasNextPage bool
			}
			Nodes []struct {
				NameWithOwner string
			}
		} `graphql:"repositories(first: $first, after: $after)"`
	} `graphql:"organization(login: $login)"`
}

// ListOrganizationRepositories pages through the repositories of org.
func (r *githubRepository) ListOrganizationRepositories(ctx context.Context, org string) ([]string, error) {
	vars := map[string]any{
		"login": githubv4.String(org),
		"first": githubv4.Int(repositoriesPerPage),
		"after": (*githubv4.String)(nil),
	}
	var names []string
	for {
		var q repositoriesQuery
		err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
			return r.wrapGraphQLRetryableErrors(r.graphQLClt.Query(ctx, &q, vars))
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories of %s: %w", org, err)
		}
		for _, node := range q.Organization.Repositories.Nodes {
			names = append(names, node.NameWithOwner)
		}
		pageInfo := q.Organization.Repositories.PageInfo
		if !pageInfo.HasNextPage {
			return names, nil
		}
		if pageInfo.EndCursor == "" {
			return nil, fmt.Errorf("listing repositories of %s failed, HasNextPage is true but EndCursor is empty", org)
		}
		cursor := pageInfo.EndCursor
		vars["after"] = &cursor
	}
}

// TagExists reports whether refs/tags/<tag> exists in owner/repo.
func (r *githubRepository) TagExists(ctx context.Context, owner, repo, tag string) (bool, error) {
	var found bool
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		_, resp, err := r.restClt.Git.GetRef(ctx, owner, repo, "tags/"+tag)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				found = false
				return nil
			}
			return r.wrapRetryableErrors(err)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up %s in %s/%s: %w", tag, owner, repo, err)
	}
	return found, nil
}

func (r *githubRepository) wrapRetryableErrors(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		r.logger.Info("rate limit exceeded",
			zap.Int("github_api_rate_limit", rateErr.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", rateErr.Rate.Reset.Time),
		)
		return retry.RetryableError(err)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil &&
		respErr.Response.StatusCode >= 500 && respErr.Response.StatusCode < 600 {
		return retry.RetryableError(err)
	}
	return err
}

var graphQLHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (r *githubRepository) wrapGraphQLRetryableErrors(err error) error {
	if err == nil {
		return nil
	}
	matches := graphQLHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}
	code, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		r.logger.Info("parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
		)
		return err
	}
	if code >= 500 && code < 600 {
		return retry.RetryableError(err)
	}
	return err
}
