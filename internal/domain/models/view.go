package models

// PredictionView is one symbol's block in Prediction mode.
type PredictionView struct {
	Symbol string           `json:"symbol"`
	Result PredictionResult `json:"result"`
	Series PriceSeries      `json:"series"`
}

// Callouts are the price lines printed under a chart. Current price and
// yesterday's close are the same observation, the last close.
type Callouts struct {
	YesterdayOpen float64 `json:"yesterday_open"`
	LastClose     float64 `json:"last_close"`
}

func (c Callouts) YesterdayClose() float64 { return c.LastClose }
func (c Callouts) Current() float64        { return c.LastClose }

// ChartView is one symbol's block in Graphs mode.
type ChartView struct {
	Symbol   string        `json:"symbol"`
	Title    string        `json:"title"`
	PNG      string        `json:"png_base64,omitempty"`
	Callouts Callouts      `json:"callouts"`
	Overlay  *TrendOverlay `json:"overlay,omitempty"`
}

// AnalysisView is one symbol's block in Analysis mode.
type AnalysisView struct {
	Symbol  string       `json:"symbol"`
	Summary StatsSummary `json:"summary"`
}

// DashboardView is everything needed to draw the page for one mode.
type DashboardView struct {
	State       SessionState     `json:"state"`
	Mode        DisplayMode      `json:"mode"`
	Symbols     []string         `json:"symbols"`
	Range       DateRange        `json:"range"`
	Notices     []Notice         `json:"notices,omitempty"`
	Predictions []PredictionView `json:"predictions,omitempty"`
	Charts      []ChartView      `json:"charts,omitempty"`
	Analyses    []AnalysisView   `json:"analyses,omitempty"`
}

// Empty reports whether the view carries no per-symbol output.
func (v DashboardView) Empty() bool {
	return len(v.Predictions) == 0 && len(v.Charts) == 0 && len(v.Analyses) == 0
}
