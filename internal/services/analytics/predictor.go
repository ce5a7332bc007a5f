package analytics

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"StockSight/internal/domain/models"
	"StockSight/pkg/util"
)

var ErrEmptySeries = errors.New("analytics: empty price series")

// PredictorOption configures LinearPredictor.
type PredictorOption func(*LinearPredictor)

// WithTestSize sets the held-out fraction of the train/test split.
func WithTestSize(f float64) PredictorOption {
	return func(p *LinearPredictor) { p.testSize = f }
}

// WithSeed sets the split permutation seed.
func WithSeed(seed uint64) PredictorOption {
	return func(p *LinearPredictor) { p.seed = seed }
}

// WithHorizon sets how many days past the last bar the forecast targets.
func WithHorizon(days int) PredictorOption {
	return func(p *LinearPredictor) { p.horizon = days }
}

// LinearPredictor regresses Close on the date ordinal and extrapolates.
type LinearPredictor struct {
	testSize float64
	seed     uint64
	horizon  int
}

func NewLinearPredictor(opts ...PredictorOption) *LinearPredictor {
	p := &LinearPredictor{testSize: 0.2, seed: 42, horizon: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *LinearPredictor) Predict(series models.PriceSeries) (models.PredictionResult, error) {
	n := series.Len()
	if n == 0 {
		return models.PredictionResult{}, fmt.Errorf("predict %s: %w", series.Symbol, ErrEmptySeries)
	}

	xs := make([]float64, n)
	ys := series.Closes()
	for i, b := range series.Bars {
		xs[i] = float64(util.Ordinal(b.Date))
	}

	// The held-out part is only split off, never scored.
	train, test := trainTestSplit(n, p.testSize, p.seed)
	if len(train) == 0 {
		train = identity(n)
		test = nil
	}
	xt := make([]float64, len(train))
	yt := make([]float64, len(train))
	for i, idx := range train {
		xt[i] = xs[idx]
		yt[i] = ys[idx]
	}
	intercept, slope := fitLine(xt, yt)

	last, _ := series.Last()
	predDate := util.Day(last.Date).AddDate(0, 0, p.horizon)
	predicted := intercept + slope*float64(util.Ordinal(predDate))

	return models.PredictionResult{
		Symbol:         series.Symbol,
		PredictedDate:  predDate,
		PredictedPrice: predicted,
		CurrentPrice:   last.Close,
		Direction:      models.ClassifyDirection(predicted, last.Close),
		TrainSize:      len(train),
		TestSize:       len(test),
	}, nil
}

// trainTestSplit shuffles [0, n) with a seeded permutation; the first
// ceil(testSize*n) indices are the test part, the rest the training part.
func trainTestSplit(n int, testSize float64, seed uint64) (train, test []int) {
	if n == 0 {
		return nil, nil
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest > n {
		nTest = n
	}
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	return perm[nTest:], perm[:nTest]
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
