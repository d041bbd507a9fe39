package tempo

import "strconv"

// FormatBPM renders bpm with precision decimal digits.
// Rounding is to the nearest representable decimal, ties to even, which is
// strconv's behavior for the exact binary value (2.5 -> "2", 3.5 -> "4").
func FormatBPM(bpm float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(bpm, 'f', precision, 64)
}
