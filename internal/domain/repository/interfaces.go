package repository

import (
	"context"
	"time"

	"StockSight/internal/domain/models"
)

// MarketData returns daily bars for [start, end). An unknown symbol or a range
// without trading days yields an empty slice and no error.
type MarketData interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]models.PriceBar, error)
}

type SessionStore interface {
	// Load returns the stored session, or a fresh Idle session when none exists.
	Load(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, ev models.InteractionEvent) error
	Close() error
}

type Metrics interface {
	RecordFetch(symbol string, kind models.FetchKind)
	RecordFetchLatency(seconds float64)
	RecordRender(mode models.DisplayMode, seconds float64)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordSubmit(accepted bool)
}
