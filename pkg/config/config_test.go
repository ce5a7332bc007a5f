package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Session.TTL != 30*time.Minute {
		t.Fatalf("unexpected session ttl %v", c.Session.TTL)
	}
	if c.Dashboard.TrendWindow != 5 || c.Dashboard.ForecastDays != 1 || c.Dashboard.Seed != 42 {
		t.Fatalf("unexpected dashboard defaults %+v", c.Dashboard)
	}
	if strings.Join(c.Dashboard.Symbols, " ") != strings.Join(DefaultSymbols, " ") {
		t.Fatalf("expected default symbols, got %v", c.Dashboard.Symbols)
	}
	if !c.RateLimit.Enabled {
		t.Fatalf("expected rate limit enabled by default")
	}
}

func TestParseKeepsExplicitValues(t *testing.T) {
	c, err := Parse([]byte(`
environment: prod
server:
  port: 9090
  cors:
    allow_origins: [https://example.org]
dashboard:
  symbols: [AAPL, MDB]
rate_limit:
  enabled: false
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if len(c.Server.CORS.AllowOrigins) != 1 || c.Server.CORS.AllowOrigins[0] != "https://example.org" {
		t.Fatalf("unexpected cors origins %v", c.Server.CORS.AllowOrigins)
	}
	if len(c.Dashboard.Symbols) != 2 || c.Dashboard.Symbols[1] != "MDB" {
		t.Fatalf("unexpected symbols %v", c.Dashboard.Symbols)
	}
	if c.RateLimit.Enabled {
		t.Fatalf("expected rate limit disabled")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"missing environment", "server:\n  port: 1\n", "environment is required"},
		{"empty background", "environment: x\ndashboard:\n  background_image: \"\"\n", "background_image"},
		{"bad trend window", "environment: x\ndashboard:\n  trend_window: 3\n", "trend_window"},
		{"bad test size", "environment: x\ndashboard:\n  test_size: 1.5\n", "test_size"},
		{"kafka without brokers", "environment: x\nkafka:\n  enabled: true\n", "kafka.brokers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	c, err := Parse([]byte("environment: dev\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	env := map[string]string{
		"STOCKSIGHT_PORT":    "7000",
		"STOCKSIGHT_SYMBOLS": "aapl, goog,,",
		"REDIS_ADDR":         "cache:6380",
		"KAFKA_BROKERS":      "k1:9092,k2:9092",
	}
	c.applyEnv(func(k string) string { return env[k] })

	if c.Server.Port != 7000 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if len(c.Dashboard.Symbols) != 2 || c.Dashboard.Symbols[1] != "goog" {
		t.Fatalf("unexpected symbols %v", c.Dashboard.Symbols)
	}
	if !c.Redis.Enabled || c.Redis.Host != "cache" || c.Redis.Port != 6380 {
		t.Fatalf("unexpected redis %+v", c.Redis)
	}
	if !c.Kafka.Enabled || len(c.Kafka.Brokers) != 2 {
		t.Fatalf("unexpected kafka brokers %v", c.Kafka.Brokers)
	}
}
