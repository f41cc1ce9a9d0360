package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecutionSummary(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	exec := Execution{
		ID:               "exec-1",
		Timestamp:        ts,
		ReferenceProduct: Product{Title: "Reference Bottle"},
		DurationMs:       1700,
		Steps:            make([]PipelineStep, 4),
		Status:           ExecutionStatusCompleted,
	}

	t.Run("WithWinner", func(t *testing.T) {
		e := exec
		e.FinalOutput = &Product{Title: "Competitor Bottle"}

		s := e.Summary()
		assert.Equal(t, "exec-1", s.ID)
		assert.Equal(t, ts, s.Timestamp)
		assert.Equal(t, "Reference Bottle", s.ReferenceTitle)
		assert.Equal(t, "Competitor Bottle", s.WinnerTitle)
		assert.Equal(t, int64(1700), s.DurationMs)
		assert.Equal(t, 4, s.Steps)
		assert.Equal(t, ExecutionStatusCompleted, s.Status)
	})

	t.Run("WithoutWinner", func(t *testing.T) {
		s := exec.Summary()
		assert.Empty(t, s.WinnerTitle)
	})
}

func TestStepKindsOrder(t *testing.T) {
	assert.Equal(t, []StepKind{
		StepKeywordGeneration,
		StepCandidateSearch,
		StepApplyFilters,
		StepRankAndSelect,
	}, StepKinds)
}
