package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "snappy", prometheus.NewRegistry())
	ctx := context.Background()

	if err := p.Publish(ctx, "events", []byte("s1"), map[string]int{"fetched": 2}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Publish(ctx, "events", nil, "raw"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(w.msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Value) != `{"fetched":2}` || string(w.msgs[0].Key) != "s1" || w.msgs[0].Topic != "events" {
		t.Fatalf("unexpected message %+v", w.msgs[0])
	}
	if string(w.msgs[1].Value) != "raw" {
		t.Fatalf("strings are sent as is, got %q", w.msgs[1].Value)
	}
	if got := testutil.ToFloat64(p.metrics.msgs.WithLabelValues("events", "snappy", "ok")); got != 2 {
		t.Fatalf("expected 2 ok messages counted, got %v", got)
	}
}

func TestPublishCountsErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newProducer(w, "gzip", prometheus.NewRegistry())

	if err := p.Publish(context.Background(), "logs", nil, "x"); err == nil {
		t.Fatalf("expected error")
	}
	if got := testutil.ToFloat64(p.metrics.errs.WithLabelValues("logs")); got != 1 {
		t.Fatalf("expected 1 error counted, got %v", got)
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(WithRegisterer(prometheus.NewRegistry())); err == nil {
		t.Fatalf("expected error without brokers")
	}
}
