package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/zendframework/maintainers/internal/repository"
)

// ListRepositoriesUseCase lists the maintained repositories of a set of organizations.
type ListRepositoriesUseCase struct {
	GithubRepo repository.GithubRepository
	Blocklist  []string
	Acceptlist []string
	// Prefix admits any repository whose name starts with it.
	Prefix string
}

// Execute returns the "owner/name" of every kept repository in natural order.
func (uc *ListRepositoriesUseCase) Execute(ctx context.Context, orgs []string) ([]string, error) {
	var kept []string
	for _, org := range orgs {
		names, err := uc.GithubRepo.ListOrganizationRepositories(ctx, org)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories of %s: %w", org, err)
		}
		for _, name := range names {
			if uc.keep(name) {
				kept = append(kept, name)
			}
		}
	}
	slices.SortFunc(kept, naturalCompare)
	return slices.Compact(kept), nil
}

func (uc *ListRepositoriesUseCase) keep(nameWithOwner string) bool {
	if slices.Contains(uc.Blocklist, nameWithOwner) {
		return false
	}
	if slices.Contains(uc.Acceptlist, nameWithOwner) {
		return true
	}
	_, repo, ok := strings.Cut(nameWithOwner, "/")
	if !ok {
		return false
	}
	return strings.HasPrefix(repo, uc.Prefix)
}

// naturalCompare orders strings byte by byte except that runs of digits
// compare by their numeric value, so zend-cache2 sorts before zend-cache10.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, restA := splitDigits(a)
			nb, restB := splitDigits(b)
			na, nb = strings.TrimLeft(na, "0"), strings.TrimLeft(nb, "0")
			if c := cmp.Compare(len(na), len(nb)); c != 0 {
				return c
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			a, b = restA, restB
			continue
		}
		if a[0] != b[0] {
			return cmp.Compare(a[0], b[0])
		}
		a, b = a[1:], b[1:]
	}
	return cmp.Compare(len(a), len(b))
}

func splitDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
