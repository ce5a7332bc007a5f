package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches []LogBatch
}

func (p *capturePublisher) Publish(_ context.Context, topic string, _ []byte, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, value.(LogBatch))
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.batches)
}

func TestWriterLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info")
	l.Info("fetched", String("symbol", "AAPL"), Int("rows", 30), Float64("close", 1.5))
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["symbol"] != "AAPL" || m["rows"].(float64) != 30 || m["message"] != "fetched" {
		t.Fatalf("unexpected entry %v", m)
	}
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "debug").With(String("session", "s1"))
	l.Warn("rate limited")
	if !strings.Contains(buf.String(), `"session":"s1"`) {
		t.Fatalf("missing context field: %s", buf.String())
	}
}

func TestCollectorDeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 10,
		Topic:          "logs",
		Source:         "stocksight",
		Publisher:      pub,
	})

	for i := 0; i < 3; i++ {
		c.AddLog("error", "fetch failed", map[string]interface{}{"symbol": "AAPL"}, "x.go:1")
	}
	c.AddLog("error", "fetch failed", map[string]interface{}{"symbol": "MDB"}, "x.go:1")
	if got := c.Pending(); got != 2 {
		t.Fatalf("expected 2 unique entries, got %d", got)
	}

	c.Close()
	if pub.count() != 1 {
		t.Fatalf("expected one batch, got %d", pub.count())
	}
	b := pub.batches[0]
	if pub.topic != "logs" || b.Source != "stocksight" {
		t.Fatalf("unexpected batch meta %q %q", pub.topic, b.Source)
	}
	if len(b.Entries) != 2 || b.Entries[0].Count != 3 {
		t.Fatalf("expected most frequent entry first, got %+v", b.Entries)
	}
}

func TestLoggerErrorFeedsCollector(t *testing.T) {
	pub := &capturePublisher{}
	l := NewNop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 50, Publisher: pub})
	l.Error("boom", Error(errors.New("x")))
	l.Warn("not collected")
	if got := l.collector.Pending(); got != 1 {
		t.Fatalf("expected 1 pending entry, got %d", got)
	}
	l.RemoveCollector()
	if pub.count() != 1 {
		t.Fatalf("expected flush on removal, got %d", pub.count())
	}
}
