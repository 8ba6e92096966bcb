package orchestrator

import (
	"os"
	"time"
)

var (
	// BatchWorkflowTimeout bounds a whole batch release run
	BatchWorkflowTimeout = getTimeoutOrDefault("ZF_MAINTAINER_BATCH_TIMEOUT", 120*time.Minute)
	// StageWorkflowTimeout bounds a staging run
	StageWorkflowTimeout = getTimeoutOrDefault("ZF_MAINTAINER_STAGE_TIMEOUT", 30*time.Minute)
)

// getTimeoutOrDefault reads a duration override from the environment
func getTimeoutOrDefault(envVar string, def time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	return def
}

const (
	// ChangelogFile is the changelog of every repository
	ChangelogFile = "CHANGELOG.md"
	// ReadmeFile is the README regenerated on staging
	ReadmeFile = "README.md"
	// VersionBumpBranch is the working branch of changelog bumps
	VersionBumpBranch = "version/bump"
)
