// Package analysis computes group statistics for the shots of one session.
//
// Coordinates are in millimeters relative to the target center. Positive x is to
// the right of the center and positive y is below it, which is the frame the
// scoring hardware reports in.
package analysis

import (
	"math"
)

// Shot is one decoded impact.
type Shot struct {
	Number   int      `json:"shot_number"`
	Stance   int      `json:"stance,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Ring     int      `json:"ring"`
	Ring01   float64  `json:"ring01"`
	Teiler01 *float64 `json:"teiler01"`
	InnerTen bool     `json:"inner_ten"`
}

// Analysis is the summary of one shot group.
type Analysis struct {
	Teiler   TeilerStats `json:"teiler"`
	Spread   Spread      `json:"spread"`
	Center   Center      `json:"center"`
	Tendency Tendency    `json:"tendency"`
}

// TeilerStats summarizes distances between consecutive shots.
type TeilerStats struct {
	Best    float64 `json:"best"`
	Worst   float64 `json:"worst"`
	Average float64 `json:"average"`
	// FromExternalSource is set when at least one distance was taken from the
	// scoring hardware instead of computed from coordinates.
	FromExternalSource bool `json:"from_external_source"`
}

// Spread holds the population standard deviations of the group.
type Spread struct {
	XStd   float64 `json:"x_std"`
	YStd   float64 `json:"y_std"`
	Total  float64 `json:"total"`
	Radius float64 `json:"radius"`
}

// Center is the centroid of the group and its offset from the point of aim.
type Center struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Offset    float64   `json:"offset"`
	Direction Direction `json:"direction"`
}

// Direction labels the centroid position.
type Direction struct {
	X     string  `json:"x"`
	Y     string  `json:"y"`
	Angle float64 `json:"angle"`
}

// Direction labels.
const (
	Right    = "right"
	Left     = "left"
	Below    = "below"
	Above    = "above"
	Centered = "centered"
)

// Analyze computes the group statistics for shots, which must be ordered by shot
// number. It returns nil for an empty group.
func Analyze(shots []Shot) *Analysis {
	if len(shots) == 0 {
		return nil
	}

	n := float64(len(shots))

	var sumX, sumY float64
	for _, s := range shots {
		sumX += s.X
		sumY += s.Y
	}
	cx, cy := sumX/n, sumY/n

	var varX, varY float64
	for _, s := range shots {
		varX += (s.X - cx) * (s.X - cx)
		varY += (s.Y - cy) * (s.Y - cy)
	}
	xStd := math.Sqrt(varX / n)
	yStd := math.Sqrt(varY / n)
	total := math.Sqrt(xStd*xStd + yStd*yStd)

	return &Analysis{
		Teiler: teilerStats(shots),
		Spread: Spread{
			XStd:   xStd,
			YStd:   yStd,
			Total:  total,
			Radius: 2 * total,
		},
		Center: Center{
			X:         cx,
			Y:         cy,
			Offset:    math.Sqrt(cx*cx + cy*cy),
			Direction: DirectionOf(cx, cy),
		},
		Tendency: tendencyOf(shots),
	}
}

// DirectionOf labels a point relative to the target center.
func DirectionOf(x, y float64) Direction {
	return Direction{
		X:     label(x, Right, Left),
		Y:     label(y, Below, Above),
		Angle: math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360),
	}
}

func label(v float64, positive, negative string) string {
	switch {
	case v > 0:
		return positive
	case v < 0:
		return negative
	default:
		return Centered
	}
}

// pairDistance is the teiler between shots[i-1] and shots[i]. The hardware value
// wins when present.
func pairDistance(shots []Shot, i int) (float64, bool) {
	if t := shots[i].Teiler01; t != nil {
		return *t, true
	}
	dx := shots[i].X - shots[i-1].X
	dy := shots[i].Y - shots[i-1].Y
	return math.Sqrt(dx*dx + dy*dy), false
}

// teilerStats compares consecutive shots only, not all pairs.
func teilerStats(shots []Shot) TeilerStats {
	var stats TeilerStats
	if len(shots) < 2 {
		return stats
	}

	stats.Best = math.Inf(1)
	stats.Worst = math.Inf(-1)
	var sum float64
	for i := 1; i < len(shots); i++ {
		d, external := pairDistance(shots, i)
		if external {
			stats.FromExternalSource = true
		}
		stats.Best = math.Min(stats.Best, d)
		stats.Worst = math.Max(stats.Worst, d)
		sum += d
	}
	stats.Average = sum / float64(len(shots)-1)
	return stats
}

// TeilerPair is the closest pair of consecutive shots.
type TeilerPair struct {
	Distance float64 `json:"distance"`
	FromShot int     `json:"from_shot"`
	ToShot   int     `json:"to_shot"`
}

// BestTeilerPair finds the consecutive pair with the smallest teiler. The first
// pair wins ties.
func BestTeilerPair(shots []Shot) (TeilerPair, bool) {
	if len(shots) < 2 {
		return TeilerPair{}, false
	}

	best := TeilerPair{Distance: math.Inf(1)}
	for i := 1; i < len(shots); i++ {
		d, _ := pairDistance(shots, i)
		if d < best.Distance {
			best = TeilerPair{
				Distance: d,
				FromShot: shots[i-1].Number,
				ToShot:   shots[i].Number,
			}
		}
	}
	return best, true
}
