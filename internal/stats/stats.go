// Package stats keeps in-memory statistics over the tempos seen in a run.
package stats

import (
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// History holds the most recent tempo estimates, oldest first.
type History struct {
	values []float64
	limit  int
}

// NewHistory creates a history that keeps at most limit values.
// A limit of zero or less keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends an estimate, dropping the oldest one past the limit.
func (h *History) Add(bpm float64) {
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return
	}
	h.values = append(h.values, bpm)
	if h.limit > 0 && len(h.values) > h.limit {
		h.values = append(h.values[:0], h.values[len(h.values)-h.limit:]...)
	}
}

// Len returns the number of stored estimates.
func (h *History) Len() int {
	return len(h.values)
}

// Values returns a copy of the stored estimates.
func (h *History) Values() []float64 {
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

// Clear drops every stored estimate.
func (h *History) Clear() {
	h.values = h.values[:0]
}

// Summary describes a set of estimates.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// Summary computes count, min, max and mean of the stored estimates.
func (h *History) Summary() Summary {
	return Summarize(h.values)
}

// Summarize computes a Summary for values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(values))
	return s
}

// Trend returns the estimates smoothed over window. Fewer than window
// estimates are returned as recorded.
func (h *History) Trend(window int) []float64 {
	if window <= 1 || len(h.values) < window {
		return h.Values()
	}
	return MovingAverage(h.values, window)
}

// MovingAverage computes a trailing mean. Entries before the first full
// window average whatever precedes them.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if n > window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders values as one glyph each, scaled between lo and hi.
// Values outside the range are pinned to its ends; a flat range renders
// the middle glyph.
func Sparkline(values []float64, lo, hi float64) string {
	if len(values) == 0 {
		return ""
	}
	last := len(sparkChars) - 1
	span := hi - lo
	var b strings.Builder
	b.Grow(len(values))
	for _, v := range values {
		if span < 1e-9 {
			b.WriteByte(sparkChars[len(sparkChars)/2])
			continue
		}
		idx := int(math.Round((v - lo) / span * float64(last)))
		b.WriteByte(sparkChars[min(max(idx, 0), last)])
	}
	return b.String()
}
