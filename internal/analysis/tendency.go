package analysis

// Quadrant names one quarter of the target.
type Quadrant string

const (
	TopRight    Quadrant = "top_right"
	TopLeft     Quadrant = "top_left"
	BottomLeft  Quadrant = "bottom_left"
	BottomRight Quadrant = "bottom_right"
)

// Quadrants is the fixed enumeration order. Ties for the dominant quadrant go to
// the earliest entry.
var Quadrants = []Quadrant{TopRight, TopLeft, BottomLeft, BottomRight}

// QuadrantDistribution counts shots per quadrant.
type QuadrantDistribution struct {
	TopRight    int `json:"top_right"`
	TopLeft     int `json:"top_left"`
	BottomLeft  int `json:"bottom_left"`
	BottomRight int `json:"bottom_right"`
}

// Tendency is the directional bias of a group.
type Tendency struct {
	QuadrantDistribution QuadrantDistribution `json:"quadrant_distribution"`
	Dominant             Quadrant             `json:"dominant"`
}

// Count returns the number of shots in q.
func (d QuadrantDistribution) Count(q Quadrant) int {
	switch q {
	case TopRight:
		return d.TopRight
	case TopLeft:
		return d.TopLeft
	case BottomLeft:
		return d.BottomLeft
	case BottomRight:
		return d.BottomRight
	}
	return 0
}

// Total is the sum over all quadrants.
func (d QuadrantDistribution) Total() int {
	return d.TopRight + d.TopLeft + d.BottomLeft + d.BottomRight
}

// QuadrantOf classifies a point. Shots on an axis are not split evenly: x == 0
// counts as right and y == 0 counts as bottom.
func QuadrantOf(x, y float64) Quadrant {
	switch {
	case x >= 0 && y < 0:
		return TopRight
	case x < 0 && y < 0:
		return TopLeft
	case x < 0:
		return BottomLeft
	default:
		return BottomRight
	}
}

func tendencyOf(shots []Shot) Tendency {
	var dist QuadrantDistribution
	for _, s := range shots {
		switch QuadrantOf(s.X, s.Y) {
		case TopRight:
			dist.TopRight++
		case TopLeft:
			dist.TopLeft++
		case BottomLeft:
			dist.BottomLeft++
		case BottomRight:
			dist.BottomRight++
		}
	}

	dominant := Quadrants[0]
	for _, q := range Quadrants[1:] {
		if dist.Count(q) > dist.Count(dominant) {
			dominant = q
		}
	}
	return Tendency{QuadrantDistribution: dist, Dominant: dominant}
}
