package pipeline

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shopintel/competitor-xray/internal/model"
)

// Criterion names, in the fixed evaluation order.
const (
	CheckPriceRange    = "Price Range"
	CheckMinimumRating = "Minimum Rating"
	CheckMinimumReview = "Minimum Reviews"
	CheckCategoryMatch = "Category Match"
)

// countPrinter renders review counts with thousands separators for reasons.
var countPrinter = message.NewPrinter(language.English)

// ResolveFilters computes the absolute price band from the reference price.
// Done once per run; the result is recorded on the filter step and reused for
// every candidate.
func ResolveFilters(refPrice float64, fc model.FilterConfig) model.ResolvedFilters {
	return model.ResolvedFilters{
		PriceMin:       refPrice * fc.PriceMultiplierMin,
		PriceMax:       refPrice * fc.PriceMultiplierMax,
		MinRating:      fc.MinRating,
		MinReviews:     fc.MinReviews,
		TargetCategory: fc.TargetCategory,
	}
}

// EvaluateFilters runs all four criterion checks against one candidate.
// Checks are evaluated independently and combined with logical AND; none
// short-circuits, so every evaluation carries all four checks in order.
// A missing category is a non-matching value, never an error.
func EvaluateFilters(candidate model.Product, rf model.ResolvedFilters) model.FilterEvaluation {
	checks := []model.CriterionCheck{
		priceRangeCheck(candidate, rf),
		minimumRatingCheck(candidate, rf),
		minimumReviewsCheck(candidate, rf),
		categoryMatchCheck(candidate, rf),
	}

	passed := true
	for _, c := range checks {
		passed = passed && c.Passed
	}

	return model.FilterEvaluation{
		ProductID: candidate.ASIN,
		Product:   candidate,
		Passed:    passed,
		Checks:    checks,
	}
}

func priceRangeCheck(candidate model.Product, rf model.ResolvedFilters) model.CriterionCheck {
	passed := candidate.Price >= rf.PriceMin && candidate.Price <= rf.PriceMax

	var reason string
	switch {
	case passed:
		reason = fmt.Sprintf("$%.2f is within acceptable range", candidate.Price)
	case candidate.Price < rf.PriceMin:
		reason = fmt.Sprintf("$%.2f is below minimum $%.2f", candidate.Price, rf.PriceMin)
	default:
		reason = fmt.Sprintf("$%.2f exceeds maximum $%.2f", candidate.Price, rf.PriceMax)
	}

	return model.CriterionCheck{
		Name:      CheckPriceRange,
		Passed:    passed,
		Value:     candidate.Price,
		Threshold: fmt.Sprintf("$%.2f - $%.2f", rf.PriceMin, rf.PriceMax),
		Reason:    reason,
	}
}

func minimumRatingCheck(candidate model.Product, rf model.ResolvedFilters) model.CriterionCheck {
	passed := candidate.Rating >= rf.MinRating

	reason := fmt.Sprintf("%.1f★ meets minimum %.1f★ requirement", candidate.Rating, rf.MinRating)
	if !passed {
		reason = fmt.Sprintf("%.1f★ is below minimum %.1f★", candidate.Rating, rf.MinRating)
	}

	return model.CriterionCheck{
		Name:      CheckMinimumRating,
		Passed:    passed,
		Value:     candidate.Rating,
		Threshold: fmt.Sprintf("%.1f★", rf.MinRating),
		Reason:    reason,
	}
}

func minimumReviewsCheck(candidate model.Product, rf model.ResolvedFilters) model.CriterionCheck {
	passed := candidate.Reviews >= rf.MinReviews

	reason := countPrinter.Sprintf("%d reviews exceeds minimum %d", candidate.Reviews, rf.MinReviews)
	if !passed {
		reason = countPrinter.Sprintf("Only %d reviews, need at least %d", candidate.Reviews, rf.MinReviews)
	}

	return model.CriterionCheck{
		Name:      CheckMinimumReview,
		Passed:    passed,
		Value:     candidate.Reviews,
		Threshold: countPrinter.Sprintf("%d", rf.MinReviews),
		Reason:    reason,
	}
}

func categoryMatchCheck(candidate model.Product, rf model.ResolvedFilters) model.CriterionCheck {
	passed := candidate.Category == rf.TargetCategory

	value := candidate.Category
	if value == "" {
		value = "Unknown"
	}

	reason := "Product is in the correct category"
	if !passed {
		reason = fmt.Sprintf("Product category %q doesn't match target", candidate.Category)
	}

	return model.CriterionCheck{
		Name:      CheckCategoryMatch,
		Passed:    passed,
		Value:     value,
		Threshold: rf.TargetCategory,
		Reason:    reason,
	}
}
