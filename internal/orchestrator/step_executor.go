package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/domain"
)

// Step is one named operation of a workflow
type Step struct {
	Name string
	Type domain.StepType
	// WarnOnly steps record their failure and let the workflow continue
	WarnOnly bool
	Execute  func(ctx context.Context) error
	// OnFailure is called with the step error before the executor moves on or stops
	OnFailure func(err error)
}

// StepError reports the step that stopped a workflow
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step '%s' failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepExecutor runs steps in order, each exactly once. The first failing step
// that is not WarnOnly ends the workflow; nothing is retried or undone.
type StepExecutor struct {
	steps    []Step
	records  []domain.StepRecord
	warnings []string
	logger   *zap.Logger
}

// NewStepExecutor creates a new step executor
func NewStepExecutor(logger *zap.Logger) *StepExecutor {
	return &StepExecutor{logger: logger}
}

// AddStep appends a step to the workflow
func (s *StepExecutor) AddStep(step Step) {
	s.steps = append(s.steps, step)
	s.records = append(s.records, domain.StepRecord{Type: step.Type, Status: domain.StepStatusPending})
}

// Execute runs the workflow
func (s *StepExecutor) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
		record := &s.records[i]
		record.Status = domain.StepStatusRunning
		record.StartedAt = time.Now()
		s.logger.Debug("executing step", zap.String("step", step.Name))
		err := step.Execute(ctx)
		completed := time.Now()
		record.CompletedAt = &completed
		if err == nil {
			record.Status = domain.StepStatusCompleted
			continue
		}
		record.Error = err.Error()
		if step.OnFailure != nil {
			step.OnFailure(err)
		}
		if step.WarnOnly {
			record.Status = domain.StepStatusWarned
			s.warnings = append(s.warnings, fmt.Sprintf("%s: %v", step.Name, err))
			s.logger.Warn("step failed, continuing", zap.String("step", step.Name), zap.Error(err))
			continue
		}
		record.Status = domain.StepStatusFailed
		s.logger.Debug("step failed", zap.String("step", step.Name), zap.Error(err))
		return &StepError{Step: step.Name, Err: err}
	}
	return nil
}

// Records returns the state of every added step
func (s *StepExecutor) Records() []domain.StepRecord {
	return s.records
}

// Warnings returns the failures of WarnOnly steps
func (s *StepExecutor) Warnings() []string {
	return s.warnings
}
