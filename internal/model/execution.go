package model

import "time"

// StepKind identifies one stage of the pipeline.
type StepKind string

const (
	StepKeywordGeneration StepKind = "keyword_generation"
	StepCandidateSearch   StepKind = "candidate_search"
	StepApplyFilters      StepKind = "apply_filters"
	StepRankAndSelect     StepKind = "rank_and_select"
)

// StepKinds lists the stages in execution order.
var StepKinds = []StepKind{
	StepKeywordGeneration,
	StepCandidateSearch,
	StepApplyFilters,
	StepRankAndSelect,
}

// CriterionCheck is one pass/fail test within a filter evaluation. Value is
// the observed metric, Threshold the configured bound formatted for display.
type CriterionCheck struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Value     any    `json:"value"`
	Threshold string `json:"threshold"`
	Reason    string `json:"reason"`
}

// FilterEvaluation holds the full verdict for one candidate. Checks appear in
// a fixed order (price range, minimum rating, minimum reviews, category match)
// and all of them are always present regardless of earlier failures.
type FilterEvaluation struct {
	ProductID string           `json:"product_id"`
	Product   Product          `json:"product"`
	Passed    bool             `json:"passed"`
	Checks    []CriterionCheck `json:"checks"`
}

// ScoreBreakdown holds the unweighted component scores behind a final score.
type ScoreBreakdown struct {
	ReviewScore float64 `json:"review_score"`
	RatingScore float64 `json:"rating_score"`
	PriceScore  float64 `json:"price_score"`
}

// ScoredCandidate is a candidate that passed filtering, with its weighted score.
type ScoredCandidate struct {
	Product   Product        `json:"product"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ResolvedFilters records the absolute bounds applied during the filter stage,
// after the price multipliers have been resolved against the reference price.
type ResolvedFilters struct {
	PriceMin       float64 `json:"price_min"`
	PriceMax       float64 `json:"price_max"`
	MinRating      float64 `json:"min_rating"`
	MinReviews     int     `json:"min_reviews"`
	TargetCategory string  `json:"target_category"`
}

// PipelineStep is the recorded trace entry for one stage. A step is appended
// exactly once, immediately after its stage completes, and never mutated.
type PipelineStep struct {
	Kind           StepKind           `json:"step"`
	Timestamp      time.Time          `json:"timestamp"`
	DurationMs     int64              `json:"duration_ms"`
	Input          map[string]any     `json:"input,omitempty"`
	Output         map[string]any     `json:"output,omitempty"`
	Reasoning      string             `json:"reasoning,omitempty"`
	Evaluations    []FilterEvaluation `json:"evaluations,omitempty"`
	FiltersApplied *ResolvedFilters   `json:"filters_applied,omitempty"`
}

// ExecutionStatus represents the state of a pipeline run.
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// Execution is one complete pipeline run plus its full trace. FinalOutput is
// nil when no candidate passed filtering; that is a normally completed run,
// not a failure.
type Execution struct {
	ID               string          `json:"id"`
	Timestamp        time.Time       `json:"timestamp"`
	ReferenceProduct Product         `json:"reference_product"`
	FinalOutput      *Product        `json:"final_output"`
	DurationMs       int64           `json:"duration_ms"`
	Steps            []PipelineStep  `json:"steps"`
	Status           ExecutionStatus `json:"status"`
}

// ExecutionSummary is the compact view used by history listings.
type ExecutionSummary struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	ReferenceTitle string          `json:"reference_title"`
	WinnerTitle    string          `json:"winner_title,omitempty"`
	DurationMs     int64           `json:"duration_ms"`
	Steps          int             `json:"steps"`
	Status         ExecutionStatus `json:"status"`
}

// Summary returns the compact list view of the execution.
func (e *Execution) Summary() ExecutionSummary {
	s := ExecutionSummary{
		ID:             e.ID,
		Timestamp:      e.Timestamp,
		ReferenceTitle: e.ReferenceProduct.Title,
		DurationMs:     e.DurationMs,
		Steps:          len(e.Steps),
		Status:         e.Status,
	}
	if e.FinalOutput != nil {
		s.WinnerTitle = e.FinalOutput.Title
	}
	return s
}
