package pipeline

import (
	"context"
	"time"

	"github.com/shopintel/competitor-xray/internal/model"
)

// Pacer inserts the per-stage delay that makes a live trace watchable.
// The trace structure is identical whether or not any delay is applied.
type Pacer interface {
	Pace(ctx context.Context, kind model.StepKind) error
}

// NopPacer applies no delay. Used everywhere pacing is not explicitly wanted.
type NopPacer struct{}

func (NopPacer) Pace(context.Context, model.StepKind) error { return nil }

// FixedPacer sleeps a fixed duration before each stage.
type FixedPacer struct {
	Delays map[model.StepKind]time.Duration
}

// DefaultFixedPacer returns the demo pacing profile.
func DefaultFixedPacer() *FixedPacer {
	return &FixedPacer{Delays: map[model.StepKind]time.Duration{
		model.StepKeywordGeneration: 400 * time.Millisecond,
		model.StepCandidateSearch:   500 * time.Millisecond,
		model.StepApplyFilters:      600 * time.Millisecond,
		model.StepRankAndSelect:     200 * time.Millisecond,
	}}
}

func (p *FixedPacer) Pace(ctx context.Context, kind model.StepKind) error {
	d := p.Delays[kind]
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
