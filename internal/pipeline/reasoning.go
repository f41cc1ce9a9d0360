package pipeline

import (
	"fmt"

	"github.com/shopintel/competitor-xray/internal/model"
)

// Reasoning narratives summarize what each stage did and why, for the trace
// review UI. They are free text and carry no machine-read semantics.

func keywordReasoning(ref model.Product, synonyms, keywords []string) string {
	return fmt.Sprintf(
		"Extracted core product terms from %q. Kept title tokens longer than %d characters, appended %d category synonym terms, and de-duplicated to %d search keywords to maximize the candidate pool.",
		ref.Title, minTokenLen, len(synonyms), len(keywords),
	)
}

func searchReasoning(keywordCount, candidateCount int) string {
	return fmt.Sprintf(
		"Searched the catalog using %d keywords. Retrieved %d potential competitors across multiple price points and quality tiers, including direct competitors, budget alternatives, and premium options.",
		keywordCount, candidateCount,
	)
}

func filterReasoning(evals []model.FilterEvaluation, passedCount int) string {
	failCounts := make(map[string]int)
	for _, e := range evals {
		for _, c := range e.Checks {
			if !c.Passed {
				failCounts[c.Name]++
			}
		}
	}
	return fmt.Sprintf(
		"Applied 4 filter criteria to %d candidates. %d products passed all filters, %d were eliminated. Failure counts: price out of range (%d), low rating (%d), insufficient reviews (%d), wrong category (%d).",
		len(evals), passedCount, len(evals)-passedCount,
		failCounts[CheckPriceRange], failCounts[CheckMinimumRating],
		failCounts[CheckMinimumReview], failCounts[CheckCategoryMatch],
	)
}

func rankReasoning(ranked []model.ScoredCandidate, sp model.ScoringPolicy) string {
	if len(ranked) == 0 {
		return "No products passed all filter criteria. Consider relaxing filter thresholds."
	}
	winner := ranked[0]
	return countPrinter.Sprintf(
		"Selected %q as the top competitor. The scoring formula weights review count (%.0f%%), rating (%.0f%%), and price similarity (%.0f%%); this product scored %.3f with %d reviews and a %.1f★ rating.",
		winner.Product.Title,
		sp.ReviewWeight*100, sp.RatingWeight*100, sp.PriceWeight*100,
		winner.Score, winner.Product.Reviews, winner.Product.Rating,
	)
}
