package models

import (
	"math"
	"testing"
)

func TestClassifyDirection(t *testing.T) {
	cases := []struct {
		name      string
		predicted float64
		current   float64
		want      Direction
	}{
		{"up", 101.5, 100, DirectionUp},
		{"down", 99.99, 100, DirectionDown},
		{"equal", 100, 100, DirectionFlat},
		{"tiny rise is still up", math.Nextafter(100, 101), 100, DirectionUp},
		{"nan prediction falls back to flat", math.NaN(), 100, DirectionFlat},
		{"nan current falls back to flat", 100, math.NaN(), DirectionFlat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyDirection(tc.predicted, tc.current); got != tc.want {
				t.Fatalf("ClassifyDirection(%v, %v) = %q, want %q", tc.predicted, tc.current, got, tc.want)
			}
		})
	}
}
