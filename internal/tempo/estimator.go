// Package tempo estimates a tempo in beats per minute from tap timestamps.
package tempo

import (
	"time"

	"github.com/verte-zerg/taptempo/internal/model"
)

// Clock supplies tap timestamps. Implementations must never go backwards.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock; time.Time carries a monotonic reading.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ResultKind tells whether a tap produced a tempo.
type ResultKind int

const (
	// InsufficientData means the window cannot yield a tempo yet.
	InsufficientData ResultKind = iota
	// Estimate means BPM holds a finite tempo.
	Estimate
)

// TapResult is the outcome of recording a tap.
type TapResult struct {
	Kind ResultKind
	// BPM is set only when Kind is Estimate.
	BPM float64
	// Samples is the window length after the tap.
	Samples int
	// Reset reports that the inactivity policy cleared the window before this tap.
	Reset bool
}

// HasEstimate reports whether r carries a tempo.
func (r TapResult) HasEstimate() bool {
	return r.Kind == Estimate
}

// Estimator keeps a rolling window of recent taps.
// It is not safe for concurrent use.
type Estimator struct {
	cfg    model.Config
	clock  Clock
	window *Window
}

// NewEstimator builds an estimator. cfg is clamped; a nil clock uses SystemClock.
func NewEstimator(cfg model.Config, clock Clock) *Estimator {
	cfg = cfg.Clamp()
	if clock == nil {
		clock = SystemClock{}
	}
	return &Estimator{
		cfg:    cfg,
		clock:  clock,
		window: NewWindow(cfg.SampleSize),
	}
}

// Config returns the clamped settings in use.
func (e *Estimator) Config() model.Config {
	return e.cfg
}

// Tap records a tap at the clock's current time.
func (e *Estimator) Tap() TapResult {
	return e.RecordTap(e.clock.Now())
}

// RecordTap records a tap at now and returns the updated estimate.
func (e *Estimator) RecordTap(now time.Time) TapResult {
	reset := e.resetTimeElapsed(now)
	if reset {
		e.window.Clear()
	}
	e.window.Push(now)
	res := e.Current()
	res.Reset = reset
	return res
}

// Current computes the result for the window as it stands.
func (e *Estimator) Current() TapResult {
	res := TapResult{Kind: InsufficientData, Samples: e.window.Len()}
	if bpm, ok := ComputeBPM(e.window.Slice()); ok {
		res.Kind = Estimate
		res.BPM = bpm
	}
	return res
}

// Reset clears the window.
func (e *Estimator) Reset() {
	e.window.Clear()
}

// Len returns the number of taps in the window.
func (e *Estimator) Len() int {
	return e.window.Len()
}

// Samples returns a copy of the window, oldest first.
func (e *Estimator) Samples() []time.Time {
	return e.window.Slice()
}

// resetTimeElapsed compares now against the most recent tap in whole seconds.
func (e *Estimator) resetTimeElapsed(now time.Time) bool {
	last, ok := e.window.Newest()
	if !ok {
		return false
	}
	idle := now.Sub(last)
	if idle < 0 {
		return false
	}
	return int64(idle/time.Second) >= int64(e.cfg.ResetTimeSeconds)
}

// ComputeBPM returns n*60000/elapsedMillis for n taps ordered oldest first.
// It reports false when fewer than two taps are given or the span is not
// positive, so callers never see NaN or Inf.
//
// The count n includes every tap rather than the n-1 intervals between them.
func ComputeBPM(samples []time.Time) (float64, bool) {
	n := len(samples)
	if n < 2 {
		return 0, false
	}
	elapsed := ElapsedMillis(samples[n-1].Sub(samples[0]))
	if elapsed <= 0 {
		return 0, false
	}
	return float64(n) * 60000 / elapsed, true
}

// ElapsedMillis converts d into fractional milliseconds without dropping
// the sub-millisecond part. Negative durations clamp to zero.
func ElapsedMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	secs := d / time.Second
	nanos := d % time.Second
	return float64(secs)*1000 + float64(nanos)/1e6
}
