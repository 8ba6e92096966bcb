package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrVersionLineMismatch is returned when a version does not belong to the requested line.
var ErrVersionLineMismatch = errors.New("version does not belong to the requested minor line")

var branchVersionRegex = regexp.MustCompile(`^(?P<minor>\d+\.\d+)\.\d+$`)

// Increment returns the next patch release. A .0 version is returned
// unchanged: it is the release being created, not one to bump past.
func Increment(v Version) Version {
	if v.IsInitial() {
		return v
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// BaseRef returns the ref a release branch for the current version starts from.
func BaseRef(current Version, integrationBranch string) string {
	if current.IsInitial() {
		if integrationBranch == "" {
			return DefaultIntegrationBranch
		}
		return integrationBranch
	}
	return current.Tag()
}

// BranchNameFor derives release-M.N from an M.N.P string.
func BranchNameFor(version string) (string, error) {
	m := branchVersionRegex.FindStringSubmatch(version)
	if m == nil {
		return "", fmt.Errorf("%w: %q; cannot proceed", ErrMalformedVersion, version)
	}
	return ReleasePrefix + m[branchVersionRegex.SubexpIndex("minor")], nil
}

// VersionIncrementMemo caches Increment results for one batch run.
type VersionIncrementMemo map[Version]Version

// NewVersionIncrementMemo returns an empty memo.
func NewVersionIncrementMemo() VersionIncrementMemo {
	return VersionIncrementMemo{}
}

// Next returns the memoized increment of v.
func (m VersionIncrementMemo) Next(v Version) Version {
	if next, ok := m[v]; ok {
		return next
	}
	next := Increment(v)
	m[v] = next
	return next
}

// ReleasePlan holds the refs involved in cutting one release.
type ReleasePlan struct {
	Current Version
	Next    Version
	BaseRef string
	Branch  string
}

// Tag returns the tag the plan produces.
func (p ReleasePlan) Tag() string {
	return p.Next.Tag()
}

// PlanRelease resolves base ref, next version and working branch for the
// current version string. The base is anchored to the current release, so it
// is selected before incrementing.
func PlanRelease(
	current string,
	line MinorVersion,
	integrationBranch string,
	memo VersionIncrementMemo,
) (ReleasePlan, error) {
	branch, err := BranchNameFor(current)
	if err != nil {
		return ReleasePlan{}, err
	}
	v, err := ParseVersion(current)
	if err != nil {
		return ReleasePlan{}, err
	}
	if v.Line() != line {
		return ReleasePlan{}, fmt.Errorf("%w: %s is not on %s", ErrVersionLineMismatch, v, line)
	}
	baseRef := BaseRef(v, integrationBranch)
	next := Increment(v)
	if memo != nil {
		next = memo.Next(v)
	}
	return ReleasePlan{
		Current: v,
		Next:    next,
		BaseRef: baseRef,
		Branch:  branch,
	}, nil
}
