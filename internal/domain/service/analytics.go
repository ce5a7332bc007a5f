package service

import "StockSight/internal/domain/models"

// Predictor forecasts the next close of a series.
type Predictor interface {
	Predict(series models.PriceSeries) (models.PredictionResult, error)
}

// TrendFitter fits the short-window overlay. ok is false when the series is
// shorter than the window.
type TrendFitter interface {
	Fit(closes []float64) (overlay models.TrendOverlay, ok bool)
}

// Summarizer computes descriptive statistics of the closing prices.
type Summarizer interface {
	Summarize(series models.PriceSeries) models.StatsSummary
}

// ChartRenderer draws the price chart as a PNG.
type ChartRenderer interface {
	Render(series models.PriceSeries, overlay *models.TrendOverlay) ([]byte, error)
}
