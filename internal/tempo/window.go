package tempo

import "time"

// Window is a bounded FIFO of tap timestamps, oldest first.
// Pushing into a full window evicts the oldest entry. Storage grows with
// the taps actually held, never past the capacity.
type Window struct {
	values   []time.Time
	head     int // non-zero only once the window is full
	capacity int
}

// NewWindow builds an empty window holding at most capacity taps.
// A capacity below one is treated as one.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{capacity: capacity}
}

// Cap returns the maximum number of retained taps.
func (w *Window) Cap() int {
	return w.capacity
}

// Len returns the number of retained taps.
func (w *Window) Len() int {
	return len(w.values)
}

// Push appends ts and reports whether the oldest entry was evicted.
func (w *Window) Push(ts time.Time) bool {
	if len(w.values) < w.capacity {
		w.values = append(w.values, ts)
		return false
	}
	w.values[w.head] = ts
	w.head = (w.head + 1) % len(w.values)
	return true
}

// Oldest returns the first retained tap.
func (w *Window) Oldest() (time.Time, bool) {
	if len(w.values) == 0 {
		return time.Time{}, false
	}
	return w.values[w.head], true
}

// Newest returns the most recent tap.
func (w *Window) Newest() (time.Time, bool) {
	n := len(w.values)
	if n == 0 {
		return time.Time{}, false
	}
	return w.values[(w.head+n-1)%n], true
}

// Clear drops every retained tap.
func (w *Window) Clear() {
	w.values = w.values[:0]
	w.head = 0
}

// Slice copies the retained taps, oldest first.
func (w *Window) Slice() []time.Time {
	n := len(w.values)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = w.values[(w.head+i)%n]
	}
	return out
}
