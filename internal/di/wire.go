//go:build wireinject
// +build wireinject

package di

import (
	"StockSight/internal/handler/web"
	"StockSight/internal/usecase"
	"StockSight/pkg/config"
	"StockSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideSessionCache,
		ProvideHTTPClient,

		// Repositories
		ProvideEventPublisher,
		ProvideSessionStore,
		ProvideMarketData,

		// Analytics
		ProvidePredictor,
		ProvideTrendFitter,
		ProvideSummarizer,
		ProvideChartRenderer,

		// Use cases
		ProvideDataFetcher,
		usecase.NewDashboard,

		// HTTP
		ProvideRateLimiter,
		ProvideWebOptions,
		ProvideRenderer,
		web.NewDashboardHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
