package analytics

import "StockSight/internal/domain/models"

// WindowTrend fits a line through the last Window closes, x being the index
// position, and evaluates it at every index of the series.
type WindowTrend struct {
	Window int
}

func NewWindowTrend(window int) *WindowTrend {
	if window <= 0 {
		window = 5
	}
	return &WindowTrend{Window: window}
}

func (t *WindowTrend) Fit(closes []float64) (models.TrendOverlay, bool) {
	n := len(closes)
	lo := n - t.Window
	if lo < 0 {
		return models.TrendOverlay{}, false
	}
	xs := make([]float64, 0, t.Window)
	for i := lo; i < n; i++ {
		xs = append(xs, float64(i))
	}
	ys := closes[lo:]
	if len(xs) != len(ys) {
		return models.TrendOverlay{}, false
	}

	intercept, slope := fitLine(xs, ys)
	values := make([]float64, n)
	for i := range values {
		values[i] = slope*float64(i) + intercept
	}
	return models.TrendOverlay{
		Window:    t.Window,
		Slope:     slope,
		Intercept: intercept,
		Values:    values,
	}, true
}
