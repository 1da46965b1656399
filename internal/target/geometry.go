// Package target models the ring layout of the paper targets the scoring
// hardware emulates.
package target

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies a target face.
type Kind string

const (
	// AirRifle is the 10 m ISSF air rifle target (LG).
	AirRifle Kind = "LG"
	// SmallBore is the 50 m small-bore rifle target (KK).
	SmallBore Kind = "KK"
)

// Air rifle ring diameters in mm, ring 1 first. Rings step by 6 mm down to the
// nine; the ten is a 0.5 mm dot.
var airRifleDiameters = [10]float64{53.5, 47.5, 41.5, 35.5, 29.5, 23.5, 17.5, 11.5, 5.5, 0.5}

const (
	smallBoreTenDiameter = 10.4
	smallBoreRingStep    = 8.0
	smallBoreInnerTen    = 5.0
)

// Ring is one scoring ring boundary. Radius is in mm from the target center.
type Ring struct {
	Value    int     `json:"value"`
	Radius   float64 `json:"radius"`
	Color    string  `json:"color"`
	InnerTen bool    `json:"inner_ten,omitempty"`
}

var ringColors = [...]string{
	1:  "#d0d0d0",
	2:  "#c0c0c0",
	3:  "#b0b0b0",
	4:  "#a0a0a0",
	5:  "#4db8a8",
	6:  "#40a89d",
	7:  "#359892",
	8:  "#2a8887",
	9:  "#20787c",
	10: "#166871",
}

var airRifleRings, smallBoreRings []Ring

func init() {
	airRifleRings = make([]Ring, 0, 10)
	smallBoreRings = make([]Ring, 0, 11)
	for n := 1; n <= 10; n++ {
		airRifleRings = append(airRifleRings, Ring{
			Value:  n,
			Radius: airRifleDiameters[n-1] / 2,
			Color:  ringColors[n],
		})
		smallBoreRings = append(smallBoreRings, Ring{
			Value:  n,
			Radius: (smallBoreTenDiameter + smallBoreRingStep*float64(10-n)) / 2,
			Color:  ringColors[n],
		})
	}
	smallBoreRings = append(smallBoreRings, Ring{
		Value:    10,
		Radius:   smallBoreInnerTen / 2,
		Color:    "#ffffff",
		InnerTen: true,
	})
}

// KindForDiscipline maps a discipline name such as "LG 10m" or "KK 50m" to a
// target face. Anything that is not small-bore is treated as air rifle.
func KindForDiscipline(discipline string) Kind {
	if strings.Contains(strings.ToUpper(discipline), "KK") {
		return SmallBore
	}
	return AirRifle
}

// Rings returns the ring boundaries from the outermost ring inwards.
func Rings(kind Kind) []Ring {
	src := airRifleRings
	if kind == SmallBore {
		src = smallBoreRings
	}
	out := make([]Ring, len(src))
	copy(out, src)
	return out
}

// Caliber returns the projectile diameter in mm.
func Caliber(kind Kind) float64 {
	if kind == SmallBore {
		return 5.6
	}
	return 4.5
}

// MarkerRadius is the radius used when drawing a shot marker. It is smaller than
// the real projectile so shot numbers stay readable.
func MarkerRadius(kind Kind) float64 {
	if kind == SmallBore {
		return 1.2
	}
	return 1.0
}

// Classify returns the ring value a shot at (x, y) mm scores. A ring counts when
// the projectile edge touches it. Misses score 0.
func Classify(kind Kind, x, y float64) int {
	edge := math.Hypot(x, y) - Caliber(kind)/2
	best := 0
	for _, r := range Rings(kind) {
		if r.InnerTen {
			continue
		}
		if edge <= r.Radius && r.Value > best {
			best = r.Value
		}
	}
	return best
}

// IsInnerTen reports whether the shot touches the inner-ten disk. Only the
// small-bore face has one.
func IsInnerTen(kind Kind, x, y float64) bool {
	if kind != SmallBore {
		return false
	}
	return math.Hypot(x, y)-Caliber(kind)/2 <= smallBoreInnerTen/2
}

var scoreColors = map[int]string{
	10: "#00ff00",
	9:  "#90ee90",
	8:  "#ffff00",
	7:  "#ffa500",
	6:  "#ff6347",
	5:  "#ff0000",
}

// ScoreColor returns the marker color for a score; anything below 5 is grey.
func ScoreColor(score float64) string {
	if c, ok := scoreColors[int(math.Floor(score))]; ok {
		return c
	}
	return "#999999"
}

// FormatScore renders a shot score in decimal ("10.5") or whole ring ("10") mode.
func FormatScore(ring int, ring01 float64, decimal bool) string {
	if decimal {
		return strconv.FormatFloat(ring01, 'f', 1, 64)
	}
	return strconv.Itoa(ring)
}
