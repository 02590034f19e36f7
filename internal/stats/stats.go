// Package stats holds the small descriptive-statistics toolkit used by the
// dwell distribution report. Inputs are never mutated; quantiles use linear
// interpolation between closest ranks.
package stats

import (
	"math"
	"sort"
)

// Mean is the arithmetic mean, 0 for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the sample standard deviation, 0 for fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// Quantile returns the q-th quantile for q in [0, 1].
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	q = math.Max(0, math.Min(1, q))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := q * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	w := idx - float64(lower)
	return sorted[lower]*(1-w) + sorted[upper]*w
}

// FiveNumberSummary returns min, Q1, median, Q3 and max in one pass over a
// single sorted copy.
func FiveNumberSummary(values []float64) (min, q1, median, q3, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return sorted[0],
		Quantile(sorted, 0.25),
		Quantile(sorted, 0.5),
		Quantile(sorted, 0.75),
		sorted[len(sorted)-1]
}
