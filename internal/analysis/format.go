package analysis

import (
	"fmt"
	"math"
	"strings"
)

// FormatDirection renders a centroid offset for display, e.g.
// "1.2mm right, 0.4mm above". Offsets under 0.1mm on both axes read "centered".
func FormatDirection(x, y float64) string {
	absX, absY := math.Abs(x), math.Abs(y)
	xDir, yDir := Left, Above
	if x > 0 {
		xDir = Right
	}
	if y > 0 {
		yDir = Below
	}

	parts := make([]string, 0, 2)
	if absX >= 0.1 {
		parts = append(parts, fmt.Sprintf("%.1fmm %s", absX, xDir))
	}
	if absY >= 0.1 {
		parts = append(parts, fmt.Sprintf("%.1fmm %s", absY, yDir))
	}
	if len(parts) == 0 {
		return Centered
	}
	return strings.Join(parts, ", ")
}

// DistributionBucket is the number of shots that scored a whole ring.
type DistributionBucket struct {
	Ring  int `json:"ring"`
	Count int `json:"count"`
}

// ScoreDistribution counts shots per whole ring from 10 down to 0. Shots
// without a decimal score are bucketed by their whole ring. Rings nobody
// hit are left out.
func ScoreDistribution(shots []Shot) []DistributionBucket {
	var counts [11]int
	for _, s := range shots {
		score := s.Ring01
		if score == 0 {
			score = float64(s.Ring)
		}
		ring := int(math.Floor(score))
		if ring < 0 || ring > 10 {
			continue
		}
		counts[ring]++
	}

	out := make([]DistributionBucket, 0, len(counts))
	for ring := 10; ring >= 0; ring-- {
		if counts[ring] > 0 {
			out = append(out, DistributionBucket{Ring: ring, Count: counts[ring]})
		}
	}
	return out
}
