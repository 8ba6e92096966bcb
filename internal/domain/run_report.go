package domain

import (
	"sort"
	"time"
)

// RunStatus represents the overall status of a batch release run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
)

// OutcomeStatus is the terminal state of one component in a batch run
type OutcomeStatus string

const (
	OutcomeStatusSkipped         OutcomeStatus = "skipped"
	OutcomeStatusMissingCheckout OutcomeStatus = "missing_checkout"
	OutcomeStatusTagged          OutcomeStatus = "tagged"
	OutcomeStatusFailed          OutcomeStatus = "failed"
)

// StepStatus represents the status of an individual step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusWarned    StepStatus = "warned"
)

// StepType identifies the kind of step
type StepType string

const (
	StepTypeCreateBranch      StepType = "create_branch"
	StepTypeUpdateVersionFile StepType = "update_version_file"
	StepTypeCreateTag         StepType = "create_tag"
	StepTypeCheckoutMainline  StepType = "checkout_mainline"
	StepTypeDeleteBranch      StepType = "delete_branch"
	StepTypeApplyPatches      StepType = "apply_patches"
	StepTypeCollectMessages   StepType = "collect_messages"
	StepTypeUpdateReadme      StepType = "update_readme"
	StepTypeUpdateChangelog   StepType = "update_changelog"
	StepTypeCommitChanges     StepType = "commit_changes"
)

// RunReport records what a batch release run did to every component
type RunReport struct {
	SessionID  string             `json:"session_id"`
	Command    string             `json:"command"`
	Minor      string             `json:"minor"`
	BasePath   string             `json:"base_path"`
	StartedAt  time.Time          `json:"started_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Status     RunStatus          `json:"status"`
	Components []ComponentOutcome `json:"components"`
}

// ComponentOutcome is the result of processing one component
type ComponentOutcome struct {
	Component       string        `json:"component"`
	Status          OutcomeStatus `json:"status"`
	DetectedVersion string        `json:"detected_version,omitempty"`
	NewVersion      string        `json:"new_version,omitempty"`
	BaseRef         string        `json:"base_ref,omitempty"`
	Branch          string        `json:"branch,omitempty"`
	Steps           []StepRecord  `json:"steps,omitempty"`
	Error           string        `json:"error,omitempty"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// StepRecord represents a single executed step
type StepRecord struct {
	Type        StepType   `json:"type"`
	Status      StepStatus `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// NewRunReport creates a new run report
func NewRunReport(sessionID, command, minor, basePath string) *RunReport {
	now := time.Now()
	return &RunReport{
		SessionID:  sessionID,
		Command:    command,
		Minor:      minor,
		BasePath:   basePath,
		StartedAt:  now,
		UpdatedAt:  now,
		Status:     RunStatusRunning,
		Components: []ComponentOutcome{},
	}
}

// AddOutcome appends the outcome of one component
func (r *RunReport) AddOutcome(outcome ComponentOutcome) {
	r.Components = append(r.Components, outcome)
	r.UpdatedAt = time.Now()
}

// Complete marks the run as finished
func (r *RunReport) Complete() {
	r.Status = RunStatusCompleted
	r.UpdatedAt = time.Now()
}

// CountByStatus returns how many components ended in the given status
func (r *RunReport) CountByStatus(status OutcomeStatus) int {
	n := 0
	for _, c := range r.Components {
		if c.Status == status {
			n++
		}
	}
	return n
}

// CreatedTags returns the distinct tags created during the run, lowest version first
func (r *RunReport) CreatedTags() []string {
	seen := map[Version]bool{}
	var versions []Version
	for _, c := range r.Components {
		if c.Status != OutcomeStatusTagged {
			continue
		}
		v, err := ParseVersion(c.NewVersion)
		if err != nil || seen[v] {
			continue
		}
		seen[v] = true
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
	tags := make([]string, 0, len(versions))
	for _, v := range versions {
		tags = append(tags, v.Tag())
	}
	return tags
}
