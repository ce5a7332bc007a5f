package metrics

import (
	"testing"

	"StockSight/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordFetch("AAPL", models.FetchOK)
	r.RecordFetch("AAPL", models.FetchOK)
	r.RecordFetch("ZZZZ", models.FetchEmpty)
	r.RecordSubmit(false)
	r.RecordLastPrice("AAPL", 187.5)

	if got := testutil.ToFloat64(r.fetchTotal.WithLabelValues("AAPL", "ok")); got != 2 {
		t.Fatalf("unexpected ok count %v", got)
	}
	if got := testutil.ToFloat64(r.fetchTotal.WithLabelValues("ZZZZ", "empty")); got != 1 {
		t.Fatalf("unexpected empty count %v", got)
	}
	if got := testutil.ToFloat64(r.submits.WithLabelValues("false")); got != 1 {
		t.Fatalf("unexpected rejected submits %v", got)
	}
	if got := testutil.ToFloat64(r.lastPrice.WithLabelValues("AAPL")); got != 187.5 {
		t.Fatalf("unexpected last close %v", got)
	}
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	// a second recorder must not collide with the first
	_ = New(prometheus.NewRegistry())
	_ = New(prometheus.NewRegistry())
}
