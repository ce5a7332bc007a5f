package chart

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"StockSight/internal/domain/models"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorClose  = drawing.ColorFromHex("0000ff")
	colorOpen   = drawing.ColorFromHex("008000")
	colorMarker = drawing.ColorFromHex("ff0000")
	colorTrend  = drawing.ColorFromHex("ff0000")
)

// Title is the chart heading for symbol.
func Title(symbol string) string {
	return fmt.Sprintf("Close Price, Open Price, and Predicted Price Trend for %s", symbol)
}

// Option configures Renderer.
type Option func(*Renderer)

// WithSize sets the output image size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// Renderer draws close/open lines, the last-close marker and the trend overlay as PNG.
type Renderer struct {
	width  int
	height int
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: 1200, height: 600}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Render(series models.PriceSeries, overlay *models.TrendOverlay) ([]byte, error) {
	last, ok := series.Last()
	if !ok {
		return nil, fmt.Errorf("render %s: no data", series.Symbol)
	}

	dates := series.Dates()
	closes := series.Closes()
	opens := series.Opens()

	lo, hi := math.Inf(1), math.Inf(-1)
	track := func(vs []float64) {
		for _, v := range vs {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	track(closes)
	track(opens)
	if overlay != nil {
		track(overlay.Values)
	}

	series2 := []gochart.Series{
		gochart.TimeSeries{
			Name:    "Close Price",
			XValues: padDates(dates),
			YValues: padValues(closes),
			Style:   gochart.Style{StrokeColor: colorClose, StrokeWidth: 2},
		},
		gochart.TimeSeries{
			Name:    "Open Price",
			XValues: padDates(dates),
			YValues: padValues(opens),
			Style:   gochart.Style{StrokeColor: colorOpen, StrokeWidth: 2},
		},
	}
	if overlay != nil && len(overlay.Values) == len(dates) {
		series2 = append(series2, gochart.TimeSeries{
			Name:    "Predicted Price",
			XValues: padDates(dates),
			YValues: padValues(overlay.Values),
			Style: gochart.Style{
				StrokeColor:     colorTrend,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
		})
	}
	series2 = append(series2, gochart.TimeSeries{
		Name:    "Today's Price",
		XValues: []time.Time{last.Date, last.Date},
		YValues: []float64{last.Close, last.Close},
		Style: gochart.Style{
			StrokeColor: drawing.ColorTransparent,
			DotWidth:    6,
			DotColor:    colorMarker,
		},
	})

	ch := gochart.Chart{
		Title:      Title(series.Symbol),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeDateValueFormatter,
			Range:          xRange(dates),
		},
		YAxis: gochart.YAxis{
			Name:  "Price (USD)",
			Range: yRange(lo, hi),
		},
		Series: series2,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", series.Symbol, err)
	}
	return buf.Bytes(), nil
}

// padDates duplicates a lone point one day later; go-chart needs two x values.
func padDates(ds []time.Time) []time.Time {
	if len(ds) == 1 {
		return []time.Time{ds[0], ds[0].AddDate(0, 0, 1)}
	}
	return ds
}

func padValues(vs []float64) []float64 {
	if len(vs) == 1 {
		return []float64{vs[0], vs[0]}
	}
	return vs
}

func xRange(ds []time.Time) *gochart.ContinuousRange {
	first := ds[0]
	last := ds[len(ds)-1]
	if !last.After(first) {
		last = first.AddDate(0, 0, 1)
	}
	return &gochart.ContinuousRange{
		Min: gochart.TimeToFloat64(first),
		Max: gochart.TimeToFloat64(last),
	}
}

// yRange pads the data range by 5% and widens a flat range so the axis is never empty.
func yRange(lo, hi float64) *gochart.ContinuousRange {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = 0, 1
	}
	if hi <= lo {
		pad := math.Max(math.Abs(lo)*0.05, 1)
		return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	pad := (hi - lo) * 0.05
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
