// Package mathx provides descriptive statistics over float64 samples.
//
// All functions treat an empty input as a degenerate sample and return
// zero rather than NaN, so callers aggregating optional measurements do
// not need a guard at every site. Mismatched observed/predicted lengths
// are a programming error and panic.
package mathx

import (
	"math"
	"slices"
)

// Min returns the smallest value, or zero for an empty sample.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return slices.Min(values)
}

// Max returns the largest value, or zero for an empty sample.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return slices.Max(values)
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum
}

// Mean returns the arithmetic mean, or zero for an empty sample.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Sum(values) / float64(len(values))
}

// Median returns the middle value, averaging the two central values for
// even-sized samples. The input is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}

	return sorted[n/2]
}

// Variance returns the population variance.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}

	return sumSq / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Percentile returns the p-th percentile (p in [0, 100]) using linear
// interpolation between the two nearest ranks. p outside [0, 100] is
// clamped. The input is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p = math.Min(math.Max(p, 0), 100)
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}

	frac := rank - float64(lo)

	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// RSquared returns the coefficient of determination of predicted
// against observed. A constant observed sample yields zero.
func RSquared(observed, predicted []float64) float64 {
	if len(observed) != len(predicted) {
		panic("mathx: observed/predicted length mismatch")
	}
	if len(observed) == 0 {
		return 0
	}

	mean := Mean(observed)
	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}
	if ssTot == 0 {
		return 0
	}

	return 1.0 - ssRes/ssTot
}

// RMSE returns the root mean square error of predicted against
// observed.
func RMSE(observed, predicted []float64) float64 {
	if len(observed) != len(predicted) {
		panic("mathx: observed/predicted length mismatch")
	}
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// LinearFit fits y = slope*x + intercept by least squares. Fewer than
// two points, or x values without spread, yield a zero fit.
func LinearFit(x, y []float64) (slope, intercept float64) {
	if len(x) != len(y) {
		panic("mathx: x/y length mismatch")
	}
	if len(x) < 2 {
		return 0, 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	sxx := 0.0
	sxy := 0.0
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	if sxx == 0 {
		return 0, 0
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	return slope, intercept
}
