package models

import (
	"encoding/json"
	"math"
	"time"
)

// Direction classifies a forecast against the current price.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// ClassifyDirection is total over real inputs: flat only on exact equality.
// NaN on either side compares neither greater nor less and lands on flat.
func ClassifyDirection(predicted, current float64) Direction {
	switch diff := predicted - current; {
	case diff > 0:
		return DirectionUp
	case diff < 0:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

func (d Direction) Arrow() string {
	switch d {
	case DirectionUp:
		return "↑"
	case DirectionDown:
		return "↓"
	default:
		return "→"
	}
}

func (d Direction) Color() string {
	switch d {
	case DirectionUp:
		return "#90EE90"
	case DirectionDown:
		return "#CD5C5C"
	default:
		return "#ADD8E6"
	}
}

func (d Direction) Message() string {
	switch d {
	case DirectionUp:
		return "The predicted price is higher."
	case DirectionDown:
		return "The predicted price is lower."
	default:
		return "The predicted price is the same as the current price."
	}
}

// PredictionResult is a single forward-looking point for one symbol.
type PredictionResult struct {
	Symbol         string    `json:"symbol"`
	PredictedDate  time.Time `json:"predicted_date"`
	PredictedPrice float64   `json:"predicted_price"`
	CurrentPrice   float64   `json:"current_price"`
	Direction      Direction `json:"direction"`
	TrainSize      int       `json:"train_size"`
	TestSize       int       `json:"test_size"`
}

// TrendOverlay holds a short-window linear fit evaluated over the full series index.
type TrendOverlay struct {
	Window    int       `json:"window"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Values    []float64 `json:"values"`
}

const (
	MetricMean   = "Mean"
	MetricStdDev = "Standard Deviation"
	MetricMax    = "Maximum"
	MetricMin    = "Minimum"
	MetricMedian = "Median"
)

// MetricNames is the fixed output order of a StatsSummary.
var MetricNames = [...]string{MetricMean, MetricStdDev, MetricMax, MetricMin, MetricMedian}

type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MarshalJSON writes undefined values (NaN, Inf) as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	out := struct {
		Name  string   `json:"name"`
		Value *float64 `json:"value"`
	}{Name: m.Name}
	if !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0) {
		v := m.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// StatsSummary describes the closing-price column of one series.
type StatsSummary struct {
	Symbol  string   `json:"symbol"`
	Metrics []Metric `json:"metrics"`
}

// Value returns the named metric.
func (s StatsSummary) Value(name string) (float64, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}
