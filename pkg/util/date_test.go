package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-03-01")
	if !ok {
		t.Fatalf("expected ok")
	}
	if !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}
	got, ok = ParseDate("2024-03-01T15:04:05Z")
	if !ok || got.Hour() != 0 || got.Day() != 1 {
		t.Fatalf("expected truncated date, got %v", got)
	}
	if _, ok := ParseDate(""); ok {
		t.Fatalf("expected empty input to fail")
	}
	if _, ok := ParseDate("03/01/2024"); ok {
		t.Fatalf("expected unsupported layout to fail")
	}
}

func TestOrdinal(t *testing.T) {
	cases := []struct {
		date time.Time
		want int64
	}{
		{time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 719163},
		{time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC), 738886},
	}
	for _, tc := range cases {
		if got := Ordinal(tc.date); got != tc.want {
			t.Fatalf("Ordinal(%v) = %d, want %d", tc.date, got, tc.want)
		}
		if back := FromOrdinal(tc.want); !back.Equal(Day(tc.date)) {
			t.Fatalf("FromOrdinal(%d) = %v", tc.want, back)
		}
	}
}

func TestNormalizeSymbols(t *testing.T) {
	got := NormalizeSymbols([]string{" aapl", "GOOG,mdb", "AAPL", "", "goog"})
	want := []string{"AAPL", "GOOG", "MDB"}
	if len(got) != len(want) {
		t.Fatalf("unexpected %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected %v", got)
		}
	}
}
