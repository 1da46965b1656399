// Package scaled decodes integer-encoded measurements reported by the scoring
// hardware into physical units.
package scaled

import "math"

// Scale factors used by the scoring database.
const (
	Tenths     int64 = 10
	Hundredths int64 = 100
)

// Decode returns raw/scale. A zero raw value or a non-positive scale decodes to 0.
func Decode(raw, scale int64) float64 {
	if raw == 0 || scale <= 0 {
		return 0
	}
	return float64(raw) / float64(scale)
}

// DecodeNullable is Decode for optional columns; nil decodes to 0.
func DecodeNullable(raw *int64, scale int64) float64 {
	if raw == nil {
		return 0
	}
	return Decode(*raw, scale)
}

// Encode is the inverse of Decode, rounding to the nearest integer.
func Encode(v float64, scale int64) int64 {
	if scale <= 0 {
		return 0
	}
	return int64(math.Round(v * float64(scale)))
}

// Rings decodes a Ring01 value: 1045 -> 104.5.
func Rings(raw int64) float64 { return Decode(raw, Tenths) }

// Teiler decodes a Teiler01 value: 1751 -> 175.1 mm.
func Teiler(raw int64) float64 { return Decode(raw, Tenths) }

// Millimeters decodes a coordinate given in 1/100 mm.
func Millimeters(raw int64) float64 { return Decode(raw, Hundredths) }

// WholeRings drops the tenths digit: 2580 -> 258.
func WholeRings(raw int64) int {
	return int(raw / Tenths)
}
