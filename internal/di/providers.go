package di

import (
	"context"
	"fmt"
	"time"

	"StockSight/internal/assets"
	"StockSight/internal/domain/repository"
	dsvc "StockSight/internal/domain/service"
	"StockSight/internal/handler/web"
	internalrepo "StockSight/internal/repository"
	"StockSight/internal/service/ratelimit"
	"StockSight/internal/service/yahoo"
	"StockSight/internal/services/analytics"
	"StockSight/internal/services/chart"
	"StockSight/internal/usecase"
	"StockSight/pkg/cache"
	"StockSight/pkg/config"
	xhttp "StockSight/pkg/http"
	pkgkafka "StockSight/pkg/kafka"
	applogger "StockSight/pkg/logger"
	"StockSight/pkg/metrics"
	"StockSight/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideRegistry creates the Prometheus registry served on the metrics path.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideLogger creates the application logger. With Kafka enabled and the
// collector switched on, repeated errors are shipped to the log topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if cfg.Log.Collector.Enabled && producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.FlushInterval,
			CountThreshold: cfg.Log.Collector.CountThreshold,
			Topic:          cfg.Log.Collector.Topic,
			Source:         "stocksight-" + cfg.Environment,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideEventPublisher publishes interaction events to Kafka, or drops them
// when Kafka is disabled.
func ProvideEventPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NoopEventPublisher{}
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSessionCache picks the session backend: memory only, or memory in
// front of Redis when Redis is enabled.
func ProvideSessionCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Session.MemorySize)), nil
	}

	rc, err := cache.NewRedisCache(context.Background(),
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return cache.NewLayeredCache(rc, cfg.Session.MemorySize, 30*time.Second), nil
}

// ProvideSessionStore creates the session store.
func ProvideSessionStore(c cache.Service, cfg *config.Config) repository.SessionStore {
	return internalrepo.NewCacheSessionStore(c, cfg.Session.TTL)
}

// ProvideHTTPClient creates the outbound client used for market data.
func ProvideHTTPClient(cfg *config.Config) (*xhttp.Client, error) {
	c, err := xhttp.NewClient(
		xhttp.WithTimeout(cfg.MarketData.Timeout),
		xhttp.WithProxy(cfg.MarketData.ProxyURL),
		xhttp.WithHeader("User-Agent", cfg.MarketData.UserAgent),
		xhttp.WithHeader("Accept", "application/json"),
	)
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	return c, nil
}

// ProvideMarketData creates the Yahoo market-data source.
func ProvideMarketData(cfg *config.Config, c *xhttp.Client) repository.MarketData {
	return yahoo.New(cfg.MarketData.BaseURL, c)
}

// ProvideDataFetcher creates the sequential per-symbol fetcher.
func ProvideDataFetcher(src repository.MarketData, m repository.Metrics, l *applogger.Logger) *usecase.DataFetcher {
	return usecase.NewDataFetcher(src, m, l)
}

func ProvidePredictor(cfg *config.Config) dsvc.Predictor {
	return analytics.NewLinearPredictor(
		analytics.WithTestSize(cfg.Dashboard.TestSize),
		analytics.WithSeed(cfg.Dashboard.Seed),
		analytics.WithHorizon(cfg.Dashboard.ForecastDays),
	)
}

func ProvideTrendFitter(cfg *config.Config) dsvc.TrendFitter {
	return analytics.NewWindowTrend(cfg.Dashboard.TrendWindow)
}

func ProvideSummarizer() dsvc.Summarizer {
	return analytics.NewCloseSummarizer()
}

func ProvideChartRenderer() dsvc.ChartRenderer {
	return chart.NewRenderer()
}

// ProvideRateLimiter returns the per-IP submit limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
}

// ProvideWebOptions loads the background image. A missing image fails startup.
func ProvideWebOptions(cfg *config.Config) (web.Options, error) {
	bg, err := assets.LoadBackground(cfg.Dashboard.BackgroundImage)
	if err != nil {
		return web.Options{}, err
	}
	return web.Options{
		Symbols:    cfg.Dashboard.Symbols,
		Background: bg,
		Cookie: web.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.Secure,
		},
	}, nil
}

// ProvideRenderer parses the page templates.
func ProvideRenderer() (*xhttp.TemplateRenderer, error) {
	return web.NewRenderer()
}

// ProvideHTTPServer creates the Echo server with the dashboard routes.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	reg *prometheus.Registry,
	renderer *xhttp.TemplateRenderer,
	h *web.DashboardHandler,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithRenderer(renderer),
		xhttp.WithCORS(cfg.Server.CORS.AllowOrigins),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(reg, cfg.Metrics.Path))
	}
	return xhttp.NewServer(l, []xhttp.Handler{h}, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	l *applogger.Logger,
	srv *xhttp.Server,
	sessions cache.Service,
	events repository.EventPublisher,
	limiter *ratelimit.Limiter,
) *server.App {
	return server.New(l, srv, sessions, events, limiter)
}
