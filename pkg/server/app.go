package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"StockSight/internal/domain/repository"
	"StockSight/internal/service/ratelimit"
	"StockSight/pkg/cache"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	logger     *applogger.Logger
	httpServer *xhttp.Server
	sessions   cache.Service
	events     repository.EventPublisher
	limiter    *ratelimit.Limiter
}

// New creates a new App instance with all dependencies.
func New(
	logger *applogger.Logger,
	httpServer *xhttp.Server,
	sessions cache.Service,
	events repository.EventPublisher,
	limiter *ratelimit.Limiter,
) *App {
	return &App{
		logger:     logger,
		httpServer: httpServer,
		sessions:   sessions,
		events:     events,
		limiter:    limiter,
	}
}

// Run starts the application and blocks until SIGINT/SIGTERM or a server error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext is Run with an explicit stop context.
func (a *App) RunContext(ctx context.Context) error {
	errCh := a.httpServer.Start()

	if a.limiter != nil {
		go a.pruneLimiter(ctx)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			a.logger.Error("http server error", applogger.Error(err))
			runErr = err
		}
	}

	a.shutdown()
	return runErr
}

func (a *App) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := a.limiter.Prune(); n > 0 {
				a.logger.Debug("rate limiter pruned", applogger.Int("buckets", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

// shutdown stops the server first so no request touches a closed dependency.
// The log collector flushes before the producer it publishes through closes.
func (a *App) shutdown() {
	a.logger.Info("shutting down")

	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.logger.RemoveCollector()

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Warn("event publisher close error", applogger.Error(err))
		}
	}

	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			a.logger.Warn("session cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
}
