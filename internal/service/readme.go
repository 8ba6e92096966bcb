package service

import (
	_ "embed"
	"strings"
	"time"
)

// ReadmeDateLayout renders dates as "15 October 2026".
const ReadmeDateLayout = "02 January 2006"

//go:embed templates/README.md.tmpl
var defaultReadmeTemplate string

// DefaultReadmeTemplate returns the README template shipped with the binary.
func DefaultReadmeTemplate() string {
	return defaultReadmeTemplate
}

// ReadmeService renders the release README from a template carrying
// {MINOR}, {VERSION} and {DATE} tokens.
type ReadmeService interface {
	Render(template, minor, version string, date time.Time) string
}

type readmeService struct{}

func NewReadmeService() ReadmeService {
	return &readmeService{}
}

func (s *readmeService) Render(template, minor, version string, date time.Time) string {
	return strings.NewReplacer(
		"{MINOR}", minor,
		"{VERSION}", version,
		"{DATE}", date.Format(ReadmeDateLayout),
	).Replace(template)
}
