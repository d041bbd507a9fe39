package stats

import (
	"math"
	"testing"
)

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(3)
	for _, v := range []float64{100, 110, 120, 130, 140} {
		h.Add(v)
	}
	got := h.Values()
	if len(got) != 3 || got[0] != 120 || got[2] != 140 {
		t.Fatalf("unexpected values: %v", got)
	}
}

func TestHistoryIgnoresNonFinite(t *testing.T) {
	h := NewHistory(0)
	h.Add(math.Inf(1))
	h.Add(math.NaN())
	h.Add(90)
	if h.Len() != 1 {
		t.Fatalf("expected 1 value, got %d", h.Len())
	}
}

func TestSummary(t *testing.T) {
	h := NewHistory(0)
	if s := h.Summary(); s.Count != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	for _, v := range []float64{120, 100, 140} {
		h.Add(v)
	}
	s := h.Summary()
	if s.Count != 3 || s.Min != 100 || s.Max != 140 || s.Mean != 120 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("expected cleared history")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if got := MovingAverage([]float64{4, 8}, 0); got[1] != 8 {
		t.Fatalf("expected window below one to pass values through, got %v", got)
	}
}

func TestTrendSkipsSmoothingUntilWindowFills(t *testing.T) {
	h := NewHistory(0)
	h.Add(100)
	h.Add(140)
	if got := h.Trend(3); got[0] != 100 || got[1] != 140 {
		t.Fatalf("expected raw values, got %v", got)
	}
	h.Add(120)
	if got := h.Trend(3); got[2] != 120 || got[1] != 120 {
		t.Fatalf("expected smoothed values, got %v", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{5, 5, 5}, 5, 5); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 10}, 0, 10); got != " @" {
		t.Fatalf("expected min/max glyphs, got %q", got)
	}
	if got := Sparkline([]float64{-5, 5, 20}, 0, 10); got != " +@" {
		t.Fatalf("expected out-of-range values pinned, got %q", got)
	}
}
