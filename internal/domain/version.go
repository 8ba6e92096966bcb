package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

const (
	// ReleasePrefix prefixes release tags and release branches.
	ReleasePrefix = "release-"
	// DefaultIntegrationBranch is the floating branch a new minor line is cut from.
	DefaultIntegrationBranch = "develop"
)

var (
	// ErrMalformedVersion is returned for strings that are not M.N.P.
	ErrMalformedVersion = errors.New("malformed version")
	// ErrMalformedMinorVersion is returned for strings that are not M.N.
	ErrMalformedMinorVersion = errors.New("malformed minor version")

	minorVersionRegex = regexp.MustCompile(`^(0|[1-9]\d*)\.(\d+)$`)
	versionRegex      = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)
	releaseTagRegex   = regexp.MustCompile(`^release-(\d+\.\d+\.\d+)$`)
)

// MinorVersion identifies a maintenance line, e.g. 2.4.
type MinorVersion struct {
	Major uint64
	Minor uint64
}

// ParseMinorVersion parses an M.N string. Leading zeros are rejected on the major segment.
func ParseMinorVersion(s string) (MinorVersion, error) {
	m := minorVersionRegex.FindStringSubmatch(s)
	if m == nil {
		return MinorVersion{}, fmt.Errorf("%w: %q", ErrMalformedMinorVersion, s)
	}
	major, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return MinorVersion{}, fmt.Errorf("%w: %q", ErrMalformedMinorVersion, s)
	}
	minor, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return MinorVersion{}, fmt.Errorf("%w: %q", ErrMalformedMinorVersion, s)
	}
	return MinorVersion{Major: major, Minor: minor}, nil
}

// String renders the line as M.N.
func (m MinorVersion) String() string {
	return fmt.Sprintf("%d.%d", m.Major, m.Minor)
}

// Initial returns the first release of the line, M.N.0.
func (m MinorVersion) Initial() Version {
	return Version{Major: m.Major, Minor: m.Minor}
}

// BranchName returns release-M.N.
func (m MinorVersion) BranchName() string {
	return ReleasePrefix + m.String()
}

// Version is a comparable M.N.P triple, usable as a map key.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// ParseVersion parses a strict M.N.P string.
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// String renders M.N.P.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Line returns the minor version the release belongs to.
func (v Version) Line() MinorVersion {
	return MinorVersion{Major: v.Major, Minor: v.Minor}
}

// IsInitial reports whether v is the first release of its line.
func (v Version) IsInitial() bool {
	return v.Patch == 0
}

// Tag returns release-M.N.P.
func (v Version) Tag() string {
	return ReleasePrefix + v.String()
}

// Compare compares two versions.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

// ParseReleaseTag extracts the version from a release-M.N.P tag name.
func ParseReleaseTag(tag string) (Version, error) {
	m := releaseTagRegex.FindStringSubmatch(tag)
	if m == nil {
		return Version{}, fmt.Errorf("%w: tag %q", ErrMalformedVersion, tag)
	}
	return ParseVersion(m[1])
}

// LatestForLine returns the highest release among tags that belongs to line.
// Ordering is numeric per segment, so 2.4.10 sorts after 2.4.9.
func LatestForLine(tags []string, line MinorVersion) (Version, bool) {
	var candidates semver.Collection
	for _, tag := range tags {
		v, err := ParseReleaseTag(tag)
		if err != nil || v.Line() != line {
			continue
		}
		candidates = append(candidates, v.semver())
	}
	if len(candidates) == 0 {
		return Version{}, false
	}
	sort.Sort(candidates)
	latest := candidates[len(candidates)-1]
	return Version{Major: latest.Major(), Minor: latest.Minor(), Patch: latest.Patch()}, true
}
