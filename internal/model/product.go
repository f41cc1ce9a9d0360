package model

// Product is a single catalog item. Products are immutable once constructed
// and shared read-only between evaluations and executions.
type Product struct {
	ASIN     string  `json:"asin" yaml:"asin"`
	Title    string  `json:"title" yaml:"title"`
	Price    float64 `json:"price" yaml:"price"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Reviews  int     `json:"reviews" yaml:"reviews"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// FilterConfig defines the candidate acceptance criteria for one pipeline run.
// The price band is expressed as multiples of the reference product's price
// and resolved to absolute bounds once per run.
type FilterConfig struct {
	PriceMultiplierMin float64 `json:"price_multiplier_min" yaml:"price_multiplier_min" mapstructure:"price_multiplier_min" validate:"gte=0"`
	PriceMultiplierMax float64 `json:"price_multiplier_max" yaml:"price_multiplier_max" mapstructure:"price_multiplier_max" validate:"gte=0"`
	MinRating          float64 `json:"min_rating" yaml:"min_rating" mapstructure:"min_rating" validate:"gte=0,lte=5"`
	MinReviews         int     `json:"min_reviews" yaml:"min_reviews" mapstructure:"min_reviews" validate:"gte=0"`
	TargetCategory     string  `json:"target_category" yaml:"target_category" mapstructure:"target_category" validate:"required"`
}

// ScoringPolicy holds the weight triple and the normalization constants used
// by the scoring engine. Weights must sum to 1.0 (checked at config time).
type ScoringPolicy struct {
	ReviewWeight     float64 `json:"review_weight" yaml:"review_weight" mapstructure:"review_weight" validate:"gte=0,lte=1"`
	RatingWeight     float64 `json:"rating_weight" yaml:"rating_weight" mapstructure:"rating_weight" validate:"gte=0,lte=1"`
	PriceWeight      float64 `json:"price_weight" yaml:"price_weight" mapstructure:"price_weight" validate:"gte=0,lte=1"`
	ReviewSaturation float64 `json:"review_saturation" yaml:"review_saturation" mapstructure:"review_saturation" validate:"gt=0"`
	RatingBaseline   float64 `json:"rating_baseline" yaml:"rating_baseline" mapstructure:"rating_baseline" validate:"gte=0,lte=5"`
	RatingSpan       float64 `json:"rating_span" yaml:"rating_span" mapstructure:"rating_span" validate:"gt=0"`
}
