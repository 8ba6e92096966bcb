package service

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrVersionConstantNotFound is returned when a file has no VERSION constant to rewrite.
var ErrVersionConstantNotFound = errors.New("VERSION constant not found")

var versionConstantRegex = regexp.MustCompile(`(?m)^[ \t]+const VERSION = '[^']+';`)

// VersionConstantService rewrites the VERSION class constant of a PHP source file.
type VersionConstantService interface {
	Replace(contents, version string) (string, error)
}

type versionConstantService struct{}

func NewVersionConstantService() VersionConstantService {
	return &versionConstantService{}
}

func (s *versionConstantService) Replace(contents, version string) (string, error) {
	if !versionConstantRegex.MatchString(contents) {
		return "", ErrVersionConstantNotFound
	}
	return versionConstantRegex.ReplaceAllLiteralString(contents, fmt.Sprintf("    const VERSION = '%s';", version)), nil
}
