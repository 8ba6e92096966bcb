package service

import (
	"regexp"
	"strings"
)

var onelineHashRegex = regexp.MustCompile(`(?m)^[a-f0-9]+ `)

// CommitSummaryService turns "git log --oneline" output into a markdown list.
type CommitSummaryService interface {
	Bullets(onelineLog string) string
}

type commitSummaryService struct{}

func NewCommitSummaryService() CommitSummaryService {
	return &commitSummaryService{}
}

func (s *commitSummaryService) Bullets(onelineLog string) string {
	return onelineHashRegex.ReplaceAllLiteralString(strings.TrimRight(onelineLog, "\n"), "- ")
}
