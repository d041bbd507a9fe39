// Package model defines shared data structures.
package model

// Defaults and bounds for tempo settings.
const (
	DefaultPrecision  = 0
	DefaultResetTime  = 5
	DefaultSampleSize = 5

	MaxPrecision = 5
	MinResetTime = 1
	MinSample    = 1
)

// Config defines tempo estimation settings.
type Config struct {
	// Precision is the number of decimal digits shown for a tempo.
	Precision int
	// ResetTimeSeconds is the idle gap, in whole seconds, that restarts tracking.
	ResetTimeSeconds int
	// SampleSize is the maximum number of taps kept in the window.
	SampleSize int
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Precision:        DefaultPrecision,
		ResetTimeSeconds: DefaultResetTime,
		SampleSize:       DefaultSampleSize,
	}
}

// Clamp returns cfg with every field forced into its valid range.
// Out-of-range values are never rejected.
func (cfg Config) Clamp() Config {
	out := cfg
	if out.Precision > MaxPrecision {
		out.Precision = MaxPrecision
	}
	if out.Precision < 0 {
		out.Precision = 0
	}
	if out.ResetTimeSeconds < MinResetTime {
		out.ResetTimeSeconds = MinResetTime
	}
	if out.SampleSize < MinSample {
		out.SampleSize = MinSample
	}
	return out
}
