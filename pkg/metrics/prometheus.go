package metrics

import (
	"strconv"

	"StockSight/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal   *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	renderTime   *prometheus.HistogramVec
	errorsTotal  *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	submits      *prometheus.CounterVec
}

// New creates a recorder registered on reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stocksight_fetch_total",
				Help: "Per-symbol fetch outcomes",
			},
			[]string{"symbol", "result"},
		),
		fetchLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stocksight_fetch_duration_seconds",
				Help:    "Market data request duration",
				Buckets: prometheus.DefBuckets,
			},
		),
		renderTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stocksight_render_duration_seconds",
				Help:    "Time spent building a dashboard view",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stocksight_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stocksight_last_close",
				Help: "Most recent close seen for a symbol",
			},
			[]string{"symbol"},
		),
		submits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stocksight_submits_total",
				Help: "Submit actions by acceptance",
			},
			[]string{"accepted"},
		),
	}
}

func (r *Recorder) RecordFetch(symbol string, kind models.FetchKind) {
	r.fetchTotal.WithLabelValues(symbol, string(kind)).Inc()
}

func (r *Recorder) RecordFetchLatency(seconds float64) {
	r.fetchLatency.Observe(seconds)
}

func (r *Recorder) RecordRender(mode models.DisplayMode, seconds float64) {
	r.renderTime.WithLabelValues(string(mode)).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

func (r *Recorder) RecordSubmit(accepted bool) {
	r.submits.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}
