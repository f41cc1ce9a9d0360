package pipeline

import (
	"math"
	"sort"

	"github.com/shopintel/competitor-xray/internal/model"
)

// DefaultScoringPolicy returns the standard weight triple and normalization
// constants: review volume 40%, rating 35%, price similarity 25%, with review
// counts saturating at 50k and ratings normalized over the 3.5-5.0 band.
func DefaultScoringPolicy() model.ScoringPolicy {
	return model.ScoringPolicy{
		ReviewWeight:     0.40,
		RatingWeight:     0.35,
		PriceWeight:      0.25,
		ReviewSaturation: 50000,
		RatingBaseline:   3.5,
		RatingSpan:       1.5,
	}
}

// ScoreCandidate computes the weighted score for one candidate that passed
// filtering. Component scores are display-oriented and not clamped: a rating
// below the baseline yields a negative rating component.
func ScoreCandidate(candidate, ref model.Product, sp model.ScoringPolicy) model.ScoredCandidate {
	breakdown := model.ScoreBreakdown{
		ReviewScore: math.Min(float64(candidate.Reviews)/sp.ReviewSaturation, 1),
		RatingScore: (candidate.Rating - sp.RatingBaseline) / sp.RatingSpan,
		PriceScore:  1 - math.Abs(candidate.Price-ref.Price)/ref.Price,
	}

	score := sp.ReviewWeight*breakdown.ReviewScore +
		sp.RatingWeight*breakdown.RatingScore +
		sp.PriceWeight*breakdown.PriceScore

	return model.ScoredCandidate{
		Product:   candidate,
		Score:     score,
		Breakdown: breakdown,
	}
}

// RankCandidates scores every passing evaluation and sorts descending by
// score. The sort is stable: candidates with identical scores keep their
// source order.
func RankCandidates(evals []model.FilterEvaluation, ref model.Product, sp model.ScoringPolicy) []model.ScoredCandidate {
	var ranked []model.ScoredCandidate
	for _, e := range evals {
		if !e.Passed {
			continue
		}
		ranked = append(ranked, ScoreCandidate(e.Product, ref, sp))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
