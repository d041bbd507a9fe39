package tempo

import "testing"

func TestFormatBPM(t *testing.T) {
	cases := []struct {
		bpm       float64
		precision int
		want      string
	}{
		{120, 0, "120"},
		{150, 5, "150.00000"},
		{123.456789, 2, "123.46"},
		{2.5, 0, "2"},
		{3.5, 0, "4"},
		{99.9, -1, "100"},
	}
	for _, tc := range cases {
		if got := FormatBPM(tc.bpm, tc.precision); got != tc.want {
			t.Fatalf("FormatBPM(%v, %d): expected %q, got %q", tc.bpm, tc.precision, tc.want, got)
		}
	}
}
