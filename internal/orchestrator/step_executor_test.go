package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zendframework/maintainers/internal/domain"
)

func TestStepExecutor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Should run every step in order", func(t *testing.T) {
		var order []string
		executor := NewStepExecutor(zap.NewNop())
		for _, name := range []string{"one", "two", "three"} {
			executor.AddStep(Step{
				Name: name,
				Type: domain.StepTypeCommitChanges,
				Execute: func(context.Context) error {
					order = append(order, name)
					return nil
				},
			})
		}
		require.NoError(t, executor.Execute(ctx))
		assert.Equal(t, []string{"one", "two", "three"}, order)
		for _, record := range executor.Records() {
			assert.Equal(t, domain.StepStatusCompleted, record.Status)
			assert.NotNil(t, record.CompletedAt)
		}
	})

	t.Run("Should stop at the first failing step", func(t *testing.T) {
		boom := errors.New("boom")
		var failed error
		executor := NewStepExecutor(zap.NewNop())
		executor.AddStep(Step{
			Name:      "fails",
			Type:      domain.StepTypeCreateBranch,
			Execute:   func(context.Context) error { return boom },
			OnFailure: func(err error) { failed = err },
		})
		executor.AddStep(Step{
			Name: "never",
			Type: domain.StepTypeCreateTag,
			Execute: func(context.Context) error {
				t.Fatal("step after a failure must not run")
				return nil
			},
		})

		err := executor.Execute(ctx)
		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "fails", stepErr.Step)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, boom, failed)
		records := executor.Records()
		assert.Equal(t, domain.StepStatusFailed, records[0].Status)
		assert.Equal(t, "boom", records[0].Error)
		assert.Equal(t, domain.StepStatusPending, records[1].Status)
	})

	t.Run("Should continue past warn-only failures", func(t *testing.T) {
		ran := false
		executor := NewStepExecutor(zap.NewNop())
		executor.AddStep(Step{
			Name:     "cleanup",
			Type:     domain.StepTypeDeleteBranch,
			WarnOnly: true,
			Execute:  func(context.Context) error { return errors.New("not found") },
		})
		executor.AddStep(Step{
			Name:    "after",
			Type:    domain.StepTypeCommitChanges,
			Execute: func(context.Context) error { ran = true; return nil },
		})

		require.NoError(t, executor.Execute(ctx))
		assert.True(t, ran)
		assert.Equal(t, domain.StepStatusWarned, executor.Records()[0].Status)
		assert.Equal(t, []string{"cleanup: not found"}, executor.Warnings())
	})

	t.Run("Should not start steps once the context is done", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		executor := NewStepExecutor(zap.NewNop())
		executor.AddStep(Step{
			Name: "never",
			Type: domain.StepTypeCreateBranch,
			Execute: func(context.Context) error {
				t.Fatal("step must not run")
				return nil
			},
		})

		err := executor.Execute(canceled)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, domain.StepStatusPending, executor.Records()[0].Status)
	})
}
