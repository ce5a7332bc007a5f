package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// fitLine returns intercept and slope of the least-squares line through (xs, ys).
// With a single point or constant xs the slope is zero and the intercept is the
// mean of ys, which is the minimum-norm solution.
func fitLine(xs, ys []float64) (intercept, slope float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	if len(xs) == 1 || stat.Variance(xs, nil) == 0 {
		return stat.Mean(ys, nil), 0
	}
	return stat.LinearRegression(xs, ys, nil, false)
}
