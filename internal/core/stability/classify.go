// Package stability implements the tear-film stability self-test: a stopwatch
// that starts after a spoken setup instruction and a classifier for the
// measured break-up time.
package stability

import "math"

// Category is a TBUT result bucket.
type Category string

const (
	CategoryNormal   Category = "Normal"
	CategoryMarginal Category = "Marginal"
	CategoryDryEye   Category = "Dry Eye"
)

// Lower bounds (inclusive) of the Normal and Marginal buckets, in seconds.
const (
	NormalThreshold   = 10.0
	MarginalThreshold = 5.0
)

var descriptions = map[Category]string{
	CategoryNormal:   "Healthy stability. Your tear film holds well between blinks.",
	CategoryMarginal: "Marginal stability. Your tear film breaks up sooner than ideal; conscious blinking can help.",
	CategoryDryEye:   "Tear film instability (Severe Dry Eye). Consider consulting an eye professional.",
}

// Description returns the fixed explanatory text for the category.
func (category Category) Description() string {
	return descriptions[category]
}

// Result is the immutable outcome of one completed test.
type Result struct {
	Seconds     float64
	Category    Category
	Description string
}

// Classify maps a measured break-up time to its bucket. Negative and NaN
// inputs are treated as zero.
func Classify(seconds float64) Result {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	category := CategoryDryEye
	switch {
	case seconds >= NormalThreshold:
		category = CategoryNormal
	case seconds >= MarginalThreshold:
		category = CategoryMarginal
	}
	return Result{
		Seconds:     seconds,
		Category:    category,
		Description: category.Description(),
	}
}
