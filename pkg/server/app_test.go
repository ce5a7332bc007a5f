package server

import (
	"context"
	"testing"
	"time"

	"StockSight/internal/domain/models"
	"StockSight/internal/service/ratelimit"
	"StockSight/pkg/cache"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

type closeRecorder struct{ order *[]string }

func (p closeRecorder) PublishEvent(context.Context, models.InteractionEvent) error { return nil }
func (p closeRecorder) Close() error {
	*p.order = append(*p.order, "events")
	return nil
}

type trackedCache struct {
	*cache.MemoryCache
	order *[]string
}

func (c trackedCache) Close() error {
	*c.order = append(*c.order, "sessions")
	return c.MemoryCache.Close()
}

func TestRunContextShutsDownOnCancel(t *testing.T) {
	var order []string
	logger := applogger.NewNop()
	srv := xhttp.NewServer(logger, nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	app := New(logger, srv, trackedCache{cache.NewMemoryCache(), &order}, closeRecorder{&order}, ratelimit.New(1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("app did not stop")
	}

	if len(order) != 2 || order[0] != "events" || order[1] != "sessions" {
		t.Fatalf("unexpected close order %v", order)
	}
}
