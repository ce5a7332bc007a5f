package usecase

import (
	"context"
	"time"

	"StockSight/internal/domain/models"
	drepo "StockSight/internal/domain/repository"
	applogger "StockSight/pkg/logger"
)

// DataFetcher requests each symbol's history one after another. A failure or
// an empty answer for one symbol never stops the others.
type DataFetcher struct {
	source  drepo.MarketData
	metrics drepo.Metrics
	logger  *applogger.Logger
}

func NewDataFetcher(source drepo.MarketData, metrics drepo.Metrics, logger *applogger.Logger) *DataFetcher {
	return &DataFetcher{source: source, metrics: metrics, logger: logger}
}

// FetchAll returns one outcome per symbol in request order, plus the notices
// to show for skipped symbols.
func (f *DataFetcher) FetchAll(ctx context.Context, symbols []string, r models.DateRange) ([]models.FetchOutcome, []models.Notice) {
	outcomes := make([]models.FetchOutcome, 0, len(symbols))
	var notices []models.Notice

	for _, sym := range symbols {
		start := time.Now()
		bars, err := f.source.FetchDaily(ctx, sym, r.Start, r.End)
		f.metrics.RecordFetchLatency(time.Since(start).Seconds())

		switch {
		case err != nil:
			f.logger.Error("fetch failed", applogger.String("symbol", sym), applogger.Error(err))
			outcomes = append(outcomes, models.FetchOutcome{Symbol: sym, Kind: models.FetchError, Reason: err.Error()})
			notices = append(notices, models.ErrorNotice("Failed to fetch data for %s. Error: %v", sym, err))
		case len(bars) == 0:
			f.logger.Warn("no data", applogger.String("symbol", sym))
			outcomes = append(outcomes, models.FetchOutcome{Symbol: sym, Kind: models.FetchEmpty, Reason: "no data"})
			notices = append(notices, models.Warning("No data available for %s.", sym))
		default:
			series := models.PriceSeries{Symbol: sym, Bars: bars}
			outcomes = append(outcomes, models.FetchOutcome{Symbol: sym, Kind: models.FetchOK, Series: &series})
			f.logger.Debug("fetched", applogger.String("symbol", sym), applogger.Int("rows", len(bars)))
		}
		f.metrics.RecordFetch(sym, outcomes[len(outcomes)-1].Kind)
	}

	return outcomes, notices
}
