package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"3s"`
		CORS            struct {
			AllowOrigins []string `yaml:"allow_origins"`
		} `yaml:"cors"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"console"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"50"`
		MaxBackups int    `yaml:"max_backups" default:"5"`
		MaxAgeDays int    `yaml:"max_age_days" default:"14"`
		Compress   bool   `yaml:"compress"`
		Collector  struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic" default:"stocksight.logs"`
			FlushInterval  time.Duration `yaml:"flush_interval" default:"30s"`
			CountThreshold int           `yaml:"count_threshold" default:"100"`
		} `yaml:"collector"`
	} `yaml:"log"`
	MarketData struct {
		BaseURL   string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0"`
		ProxyURL  string        `yaml:"proxy_url"`
		Timeout   time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"market_data"`
	Dashboard struct {
		Symbols         []string `yaml:"symbols"`
		BackgroundImage string   `yaml:"background_image" default:"assets/146.png"`
		ForecastDays    int      `yaml:"forecast_days" default:"1"`
		TrendWindow     int      `yaml:"trend_window" default:"5"`
		TestSize        float64  `yaml:"test_size" default:"0.2"`
		Seed            uint64   `yaml:"seed" default:"42"`
	} `yaml:"dashboard"`
	Session struct {
		CookieName string        `yaml:"cookie_name" default:"stocksight_session"`
		TTL        time.Duration `yaml:"ttl" default:"30m"`
		MemorySize int           `yaml:"memory_size" default:"1000"`
		Secure     bool          `yaml:"secure"`
	} `yaml:"session"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"stocksight"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"stocksight.events"`
		RequiredAcks int      `yaml:"required_acks" default:"1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"500ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async" default:"true"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	RateLimit struct {
		Enabled  bool    `yaml:"enabled" default:"true"`
		Capacity float64 `yaml:"capacity" default:"10"`
		Refill   float64 `yaml:"refill_per_sec" default:"0.5"`
	} `yaml:"rate_limit"`
}

// DefaultSymbols is the candidate list offered by the symbol picker.
var DefaultSymbols = []string{"ADBE", "GOOG", "AMZN", "F", "UPWK", "EBAY", "DDOG", "AAPL", "TLSA", "UPST", "UBER", "MDB"}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(c.Dashboard.Symbols) == 0 {
		c.Dashboard.Symbols = append([]string(nil), DefaultSymbols...)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("STOCKSIGHT_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("STOCKSIGHT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("STOCKSIGHT_SYMBOLS"); v != "" {
		c.Dashboard.Symbols = splitList(v)
	}
	if v := getenv("STOCKSIGHT_CORS_ORIGINS"); v != "" {
		c.Server.CORS.AllowOrigins = splitList(v)
	}
	if v := getenv("STOCKSIGHT_BACKGROUND"); v != "" {
		c.Dashboard.BackgroundImage = v
	}
	if v := getenv("YAHOO_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := getenv("HTTP_PROXY_URL"); v != "" {
		c.MarketData.ProxyURL = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Redis.Port = p
			}
		}
		c.Redis.Enabled = true
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
		c.Kafka.Enabled = true
	}
	if v := getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Dashboard.Symbols) == 0 {
		return fmt.Errorf("dashboard.symbols cannot be empty")
	}
	if c.Dashboard.BackgroundImage == "" {
		return fmt.Errorf("dashboard.background_image is required")
	}
	if c.Dashboard.ForecastDays != 1 {
		return fmt.Errorf("dashboard.forecast_days must be 1, got %d", c.Dashboard.ForecastDays)
	}
	if c.Dashboard.TrendWindow != 5 {
		return fmt.Errorf("dashboard.trend_window must be 5, got %d", c.Dashboard.TrendWindow)
	}
	if c.Dashboard.TestSize <= 0 || c.Dashboard.TestSize >= 1 {
		return fmt.Errorf("dashboard.test_size must be in (0,1), got %v", c.Dashboard.TestSize)
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("market_data.base_url is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
