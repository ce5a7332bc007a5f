package usecase

import (
	"context"
	"encoding/base64"
	"time"

	"StockSight/internal/domain/models"
	drepo "StockSight/internal/domain/repository"
	dsvc "StockSight/internal/domain/service"
	"StockSight/internal/services/chart"
	applogger "StockSight/pkg/logger"
	"StockSight/pkg/util"
)

// SubmitGuardMessage is shown when Submit is pressed without symbols or dates.
const SubmitGuardMessage = "Please select symbols and date range to fetch data."

// SubmitInput is the raw form state at the moment Submit is pressed.
type SubmitInput struct {
	Symbols []string
	Start   string
	End     string
	Mode    models.DisplayMode
}

// Dashboard is the controller. It holds no per-user state; every call works on
// the session passed in, which the caller loads and saves.
type Dashboard struct {
	fetcher   *DataFetcher
	predictor dsvc.Predictor
	trend     dsvc.TrendFitter
	stats     dsvc.Summarizer
	charts    dsvc.ChartRenderer
	events    drepo.EventPublisher
	metrics   drepo.Metrics
	logger    *applogger.Logger
}

func NewDashboard(
	fetcher *DataFetcher,
	predictor dsvc.Predictor,
	trend dsvc.TrendFitter,
	stats dsvc.Summarizer,
	charts dsvc.ChartRenderer,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *Dashboard {
	return &Dashboard{
		fetcher:   fetcher,
		predictor: predictor,
		trend:     trend,
		stats:     stats,
		charts:    charts,
		events:    events,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit fetches fresh data for the selection. It returns false, leaving the
// session's data untouched, when no symbol or either date is missing.
func (d *Dashboard) Submit(ctx context.Context, sess *models.Session, in SubmitInput) bool {
	symbols := util.NormalizeSymbols(in.Symbols)
	start, okStart := util.ParseDate(in.Start)
	end, okEnd := util.ParseDate(in.End)
	if in.Mode != "" {
		sess.Mode = in.Mode
	}

	if len(symbols) == 0 || !okStart || !okEnd {
		sess.Notices = append(sess.Notices, models.Warning(SubmitGuardMessage))
		d.metrics.RecordSubmit(false)
		d.publish(ctx, models.InteractionEvent{Type: models.EventSubmitRejected, SessionID: sess.ID, Symbols: symbols, Mode: sess.Mode})
		return false
	}

	sess.State = models.StateSubmitted
	sess.Symbols = symbols
	sess.Range = models.DateRange{Start: start, End: end}

	outcomes, notices := d.fetcher.FetchAll(ctx, symbols, sess.Range)
	sess.Outcomes = outcomes
	sess.Notices = append(sess.Notices, notices...)
	sess.State = models.StateDisplaying
	sess.UpdatedAt = time.Now().UTC()
	d.metrics.RecordSubmit(true)

	fetched := len(sess.Fetched())
	d.logger.Info("submit",
		applogger.String("session", sess.ID),
		applogger.Strings("symbols", symbols),
		applogger.Int("fetched", fetched),
		applogger.Int("skipped", len(symbols)-fetched),
	)
	d.publish(ctx, models.InteractionEvent{
		Type:      models.EventSubmit,
		SessionID: sess.ID,
		Symbols:   symbols,
		Mode:      sess.Mode,
		Fetched:   fetched,
		Skipped:   len(symbols) - fetched,
	})
	return true
}

// SelectMode switches the display option. The fetched data is kept as is.
func (d *Dashboard) SelectMode(ctx context.Context, sess *models.Session, mode models.DisplayMode) {
	if sess.Mode == mode {
		return
	}
	sess.Mode = mode
	d.publish(ctx, models.InteractionEvent{Type: models.EventModeSwitch, SessionID: sess.ID, Mode: mode})
}

// Render builds the view of the session's current mode from already-fetched
// data. Pending notices move from the session into the view.
func (d *Dashboard) Render(ctx context.Context, sess *models.Session) models.DashboardView {
	start := time.Now()
	view := models.DashboardView{
		State:   sess.State,
		Mode:    sess.Mode,
		Symbols: sess.Symbols,
		Range:   sess.Range,
	}

	if sess.HasData() {
		switch sess.Mode {
		case models.ModePrediction:
			d.renderPredictions(sess, &view)
		case models.ModeGraphs:
			d.renderCharts(sess, &view)
		case models.ModeAnalysis:
			d.renderAnalyses(sess, &view)
		}
	}

	view.Notices = append(sess.TakeNotices(), view.Notices...)
	d.metrics.RecordRender(sess.Mode, time.Since(start).Seconds())
	return view
}

func (d *Dashboard) renderPredictions(sess *models.Session, view *models.DashboardView) {
	for _, sym := range sess.Symbols {
		series, ok := sess.Lookup(sym)
		if !ok {
			continue
		}
		res, err := d.predictor.Predict(series)
		if err != nil {
			d.metrics.RecordError("predict")
			d.logger.Error("predict failed", applogger.String("symbol", sym), applogger.Error(err))
			view.Notices = append(view.Notices, models.ErrorNotice("Failed to predict %s. Error: %v", sym, err))
			continue
		}
		d.metrics.RecordLastPrice(sym, res.CurrentPrice)
		d.logger.Debug("predicted",
			applogger.String("symbol", sym),
			applogger.Float64("current", res.CurrentPrice),
			applogger.Float64("predicted", res.PredictedPrice),
		)
		view.Predictions = append(view.Predictions, models.PredictionView{Symbol: sym, Result: res, Series: series})
	}
}

func (d *Dashboard) renderCharts(sess *models.Session, view *models.DashboardView) {
	for _, series := range sess.Fetched() {
		last, _ := series.Last()
		cv := models.ChartView{
			Symbol:   series.Symbol,
			Title:    chart.Title(series.Symbol),
			Callouts: models.Callouts{YesterdayOpen: last.Open, LastClose: last.Close},
		}
		if ov, ok := d.trend.Fit(series.Closes()); ok {
			cv.Overlay = &ov
		}
		png, err := d.charts.Render(series, cv.Overlay)
		if err != nil {
			d.metrics.RecordError("chart")
			d.logger.Error("chart render failed", applogger.String("symbol", series.Symbol), applogger.Error(err))
			view.Notices = append(view.Notices, models.ErrorNotice("Failed to draw chart for %s. Error: %v", series.Symbol, err))
		} else {
			cv.PNG = base64.StdEncoding.EncodeToString(png)
		}
		view.Charts = append(view.Charts, cv)
	}
}

func (d *Dashboard) renderAnalyses(sess *models.Session, view *models.DashboardView) {
	for _, series := range sess.Fetched() {
		view.Analyses = append(view.Analyses, models.AnalysisView{Symbol: series.Symbol, Summary: d.stats.Summarize(series)})
	}
}

func (d *Dashboard) publish(ctx context.Context, ev models.InteractionEvent) {
	if d.events == nil {
		return
	}
	ev.At = time.Now().UTC()
	if err := d.events.PublishEvent(ctx, ev); err != nil {
		d.logger.Warn("publish event failed", applogger.String("type", ev.Type), applogger.Error(err))
	}
}
