package service

import (
	"sort"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/pkg/scaled"
)

func decodeShot(r models.ShotRecord) analysis.Shot {
	shot := analysis.Shot{
		Number:   r.ShotNumber,
		Stance:   r.Stance,
		X:        scaled.Millimeters(r.X),
		Y:        scaled.Millimeters(r.Y),
		Ring:     scaled.WholeRings(r.Ring),
		Ring01:   scaled.Rings(r.Ring01),
		InnerTen: r.InnerTen == 1,
	}
	// A stored zero means the hardware did not compute a teiler.
	if r.Teiler01 != nil && *r.Teiler01 != 0 {
		t := scaled.Teiler(*r.Teiler01)
		shot.Teiler01 = &t
	}
	return shot
}

// decodeShots converts records and orders them by shot number.
func decodeShots(records []models.ShotRecord) []analysis.Shot {
	shots := make([]analysis.Shot, len(records))
	for i, r := range records {
		shots[i] = decodeShot(r)
	}
	sort.SliceStable(shots, func(i, j int) bool { return shots[i].Number < shots[j].Number })
	return shots
}

// decimalRings is the session total in decimal rings (e.g. 975.3).
func decimalRings(s models.SessionSummary) float64 {
	return scaled.Rings(s.TotalScoreDecimalRaw)
}

// wholeRings is the session total in whole rings.
func wholeRings(s models.SessionSummary) int {
	return scaled.WholeRings(s.TotalScoreRaw)
}

// sessionRings prefers the decimal total and falls back to the whole-ring
// total for disciplines scored without decimals.
func sessionRings(s models.SessionSummary) float64 {
	raw := s.TotalScoreDecimalRaw
	if raw == 0 {
		raw = s.TotalScoreRaw
	}
	return scaled.Rings(raw)
}

// bestTeiler returns the hardware best teiler when it is set and positive.
func bestTeiler(s models.SessionSummary) (float64, bool) {
	if s.BestTeilerRaw == nil {
		return 0, false
	}
	v := scaled.Teiler(*s.BestTeilerRaw)
	return v, v > 0
}

func newestFirst(sessions []models.SessionSummary) []models.SessionSummary {
	out := make([]models.SessionSummary, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SessionDate.After(out[j].SessionDate) })
	return out
}
