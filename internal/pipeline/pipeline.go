package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/shopintel/competitor-xray/internal/model"
	"github.com/shopintel/competitor-xray/internal/store"
)

// candidateLimit is the batch size requested from the candidate source,
// recorded on the search step for display.
const candidateLimit = 50

// ErrNoCandidates marks a run where the source returned an empty batch.
// Distinct from a completed run where no candidate passed the filters.
var ErrNoCandidates = eris.New("pipeline: no candidates retrieved")

// StepObserver is invoked synchronously after each step is recorded. The
// engine does not depend on the observer's presence or behavior.
type StepObserver func(step model.PipelineStep)

// Option configures optional pipeline behavior.
type Option func(*Pipeline)

// WithPacer replaces the default no-op stage pacer.
func WithPacer(p Pacer) Option {
	return func(pl *Pipeline) { pl.pacer = p }
}

// WithSynonyms replaces the default keyword synonym set.
func WithSynonyms(synonyms []string) Option {
	return func(pl *Pipeline) { pl.synonyms = synonyms }
}

// Pipeline sequences the four stages of a competitor-selection run and
// records the structured trace. Each Run builds its own step sequence, so
// concurrent runs never observe each other's in-progress state.
type Pipeline struct {
	filters  model.FilterConfig
	scoring  model.ScoringPolicy
	synonyms []string
	source   Source
	store    store.Store
	pacer    Pacer
}

// New creates a Pipeline. The filter configuration and scoring policy are
// assumed to be validated by the caller before any run starts.
func New(fc model.FilterConfig, sp model.ScoringPolicy, src Source, st store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		filters:  fc,
		scoring:  sp,
		synonyms: DefaultSynonyms,
		source:   src,
		store:    st,
		pacer:    NopPacer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full pipeline for one reference product. The four stages
// run strictly sequentially; each step is appended exactly once, immediately
// after its stage completes, and the observer (if any) is invoked right
// after. Any stage fault is fatal to the run: the error surfaces to the
// caller and nothing is persisted. A run with zero passing candidates is a
// normally completed execution with a nil final output.
func (p *Pipeline) Run(ctx context.Context, ref model.Product, observer StepObserver) (*model.Execution, error) {
	if err := validateReference(ref); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("asin", ref.ASIN), zap.String("title", ref.Title))
	log.Info("pipeline: starting run")

	start := time.Now()
	exec := &model.Execution{
		ID:               uuid.New().String(),
		Timestamp:        start.UTC(),
		ReferenceProduct: ref,
		Status:           model.ExecutionStatusRunning,
	}

	// Runs the stage computation, times it (pacing included), stamps the
	// step, appends it to the trace, and notifies the observer.
	trackStep := func(kind model.StepKind, fn func() (*model.PipelineStep, error)) error {
		stepStart := time.Now()
		if err := p.pacer.Pace(ctx, kind); err != nil {
			return eris.Wrapf(err, "pipeline: pace %s", kind)
		}
		step, err := fn()
		if err != nil {
			log.Error("pipeline: step failed",
				zap.String("step", string(kind)),
				zap.Error(err),
			)
			return err
		}
		step.Kind = kind
		step.Timestamp = stepStart.UTC()
		step.DurationMs = time.Since(stepStart).Milliseconds()
		exec.Steps = append(exec.Steps, *step)
		if observer != nil {
			observer(*step)
		}
		log.Info("pipeline: step complete",
			zap.String("step", string(kind)),
			zap.Int64("duration_ms", step.DurationMs),
		)
		return nil
	}

	// Stage 1: keyword generation.
	var keywords []string
	err := trackStep(model.StepKeywordGeneration, func() (*model.PipelineStep, error) {
		keywords = DeriveKeywords(ref, p.synonyms)
		return &model.PipelineStep{
			Input: map[string]any{
				"title":    ref.Title,
				"category": ref.Category,
			},
			Output:    map[string]any{"keywords": keywords},
			Reasoning: keywordReasoning(ref, p.synonyms, keywords),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 2: candidate search.
	var candidates []model.Product
	err = trackStep(model.StepCandidateSearch, func() (*model.PipelineStep, error) {
		batch, fetchErr := p.source.FetchCandidates(ctx, ref)
		if fetchErr != nil {
			return nil, eris.Wrap(fetchErr, "pipeline: fetch candidates")
		}
		if len(batch) == 0 {
			return nil, ErrNoCandidates
		}
		candidates = batch
		return &model.PipelineStep{
			Input: map[string]any{
				"keywords": keywords,
				"limit":    candidateLimit,
			},
			Output:    map[string]any{"candidates": batch},
			Reasoning: searchReasoning(len(keywords), len(batch)),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 3: filter evaluation. The price band is resolved once and
	// reused for every candidate.
	resolved := ResolveFilters(ref.Price, p.filters)
	var evaluations []model.FilterEvaluation
	var passing []model.Product
	err = trackStep(model.StepApplyFilters, func() (*model.PipelineStep, error) {
		evaluations = make([]model.FilterEvaluation, 0, len(candidates))
		for _, c := range candidates {
			evaluations = append(evaluations, EvaluateFilters(c, resolved))
		}
		for _, e := range evaluations {
			if e.Passed {
				passing = append(passing, e.Product)
			}
		}
		return &model.PipelineStep{
			Input: map[string]any{"candidate_count": len(candidates)},
			Output: map[string]any{
				"passed_count":    len(passing),
				"failed_count":    len(evaluations) - len(passing),
				"passed_products": passing,
			},
			Reasoning:      filterReasoning(evaluations, len(passing)),
			Evaluations:    evaluations,
			FiltersApplied: &resolved,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 4: rank and select.
	var ranked []model.ScoredCandidate
	err = trackStep(model.StepRankAndSelect, func() (*model.PipelineStep, error) {
		ranked = RankCandidates(evaluations, ref, p.scoring)

		var winner *model.Product
		if len(ranked) > 0 {
			w := ranked[0].Product
			winner = &w
		}
		top := ranked
		if len(top) > 5 {
			top = top[:5]
		}
		return &model.PipelineStep{
			Input: map[string]any{"qualified_candidates": len(passing)},
			Output: map[string]any{
				"winner":     winner,
				"top_ranked": top,
			},
			Reasoning: rankReasoning(ranked, p.scoring),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if len(ranked) > 0 {
		w := ranked[0].Product
		exec.FinalOutput = &w
	}
	exec.DurationMs = time.Since(start).Milliseconds()
	exec.Status = model.ExecutionStatusCompleted

	if err := p.store.Insert(ctx, exec); err != nil {
		return nil, eris.Wrap(err, "pipeline: store execution")
	}

	log.Info("pipeline: run complete",
		zap.String("execution_id", exec.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("passed", len(passing)),
		zap.Bool("winner_found", exec.FinalOutput != nil),
		zap.Int64("duration_ms", exec.DurationMs),
	)

	return exec, nil
}

// validateReference rejects malformed reference products before any stage
// runs. A zero price would make the price-similarity score undefined.
func validateReference(ref model.Product) error {
	if ref.Title == "" {
		return eris.New("pipeline: reference product title is required")
	}
	if ref.Price <= 0 {
		return eris.Errorf("pipeline: reference product price must be positive, got %.2f", ref.Price)
	}
	if ref.Rating < 0 || ref.Rating > 5 {
		return eris.Errorf("pipeline: reference product rating must be in [0,5], got %.1f", ref.Rating)
	}
	if ref.Reviews < 0 {
		return eris.Errorf("pipeline: reference product review count must be non-negative, got %d", ref.Reviews)
	}
	return nil
}
