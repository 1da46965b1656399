package scaled_test

import (
	"testing"

	"github.com/godilite/shotstats/pkg/scaled"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name     string
		raw      int64
		scale    int64
		expected float64
	}{
		{name: "teiler", raw: 1751, scale: scaled.Tenths, expected: 175.1},
		{name: "ring01", raw: 105, scale: scaled.Tenths, expected: 10.5},
		{name: "coordinate", raw: -1234, scale: scaled.Hundredths, expected: -12.34},
		{name: "zero raw", raw: 0, scale: scaled.Tenths, expected: 0},
		{name: "zero scale", raw: 42, scale: 0, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, scaled.Decode(tc.raw, tc.scale), 1e-9)
		})
	}
}

func TestDecodeNullable(t *testing.T) {
	raw := int64(493)

	assert.Equal(t, 0.0, scaled.DecodeNullable(nil, scaled.Tenths))
	assert.InDelta(t, 49.3, scaled.DecodeNullable(&raw, scaled.Tenths), 1e-9)
}

func TestRoundTrip(t *testing.T) {
	values := []float64{0.1, 10.5, 175.1, 1245.6, -3.2}
	for _, v := range values {
		for _, s := range []int64{scaled.Tenths, scaled.Hundredths} {
			assert.InDelta(t, v, scaled.Decode(scaled.Encode(v, s), s), 1e-9, "value %v scale %d", v, s)
		}
	}
}

func TestNamedHelpers(t *testing.T) {
	assert.InDelta(t, 355.8, scaled.Rings(3558), 1e-9)
	assert.InDelta(t, 326.6, scaled.Teiler(3266), 1e-9)
	assert.InDelta(t, 1.5, scaled.Millimeters(150), 1e-9)
	assert.Equal(t, 258, scaled.WholeRings(2580))
	assert.Equal(t, 10, scaled.WholeRings(105))
}
