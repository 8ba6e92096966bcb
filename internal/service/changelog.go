package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ChangelogDateLayout is the date format of release headings.
const ChangelogDateLayout = "2006-01-02"

var (
	// ErrChangelogHeadingNotFound is returned when the top-level heading is missing.
	ErrChangelogHeadingNotFound = errors.New("changelog heading not found")
	// ErrChangelogSectionNotFound is returned when no release section follows the preamble.
	ErrChangelogSectionNotFound = errors.New("no release section found after changelog preamble")
)

var (
	releaseHeadingRegex = regexp.MustCompile(`(?m)^# CHANGELOG[ \t]*$`)
	preambleRegex       = regexp.MustCompile(`(?s)^(# Changelog\n\n.*?)(\n\n## )`)
)

var developmentCategories = []string{"Added", "Changed", "Deprecated", "Removed", "Fixed"}

// ChangelogService edits CHANGELOG.md files.
type ChangelogService interface {
	// PrependRelease adds a dated release section right below the "# CHANGELOG" heading.
	PrependRelease(contents, version string, date time.Time, entries string) (string, error)
	// AddDevelopmentSection inserts an empty "<version> - TBD" section above the latest release.
	AddDevelopmentSection(contents, version string) (string, error)
}

type changelogService struct{}

func NewChangelogService() ChangelogService {
	return &changelogService{}
}

func (s *changelogService) PrependRelease(contents, version string, date time.Time, entries string) (string, error) {
	loc := releaseHeadingRegex.FindStringIndex(contents)
	if loc == nil {
		return "", ErrChangelogHeadingNotFound
	}
	section := fmt.Sprintf("# CHANGELOG\n\n## %s (%s)\n\n%s",
		version, date.Format(ChangelogDateLayout), strings.TrimRight(entries, "\n"))
	return contents[:loc[0]] + section + contents[loc[1]:], nil
}

func (s *changelogService) AddDevelopmentSection(contents, version string) (string, error) {
	loc := preambleRegex.FindStringSubmatchIndex(contents)
	if loc == nil {
		return "", ErrChangelogSectionNotFound
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n\n## %s - TBD", version)
	for _, category := range developmentCategories {
		fmt.Fprintf(&b, "\n\n### %s\n\n- Nothing.", category)
	}
	// loc[3] ends the preamble group; the "\n\n## " separator that follows is kept.
	return contents[:loc[3]] + b.String() + contents[loc[3]:], nil
}
