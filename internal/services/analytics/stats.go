package analytics

import (
	"math"
	"sort"

	"StockSight/internal/domain/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CloseSummarizer computes the five close-price statistics.
type CloseSummarizer struct{}

func NewCloseSummarizer() *CloseSummarizer { return &CloseSummarizer{} }

func (CloseSummarizer) Summarize(series models.PriceSeries) models.StatsSummary {
	closes := series.Closes()
	values := [len(models.MetricNames)]float64{}
	if len(closes) == 0 {
		for i := range values {
			values[i] = math.NaN()
		}
	} else {
		values = [...]float64{
			stat.Mean(closes, nil),
			stat.StdDev(closes, nil),
			floats.Max(closes),
			floats.Min(closes),
			median(closes),
		}
	}

	metrics := make([]models.Metric, len(models.MetricNames))
	for i, name := range models.MetricNames {
		metrics[i] = models.Metric{Name: name, Value: values[i]}
	}
	return models.StatsSummary{Symbol: series.Symbol, Metrics: metrics}
}

// median averages the two middle values for even lengths.
func median(xs []float64) float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
