package service

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/repository/models"
)

// SessionAnalysis is the group analysis of one session together with the
// number of shots it was computed from.
type SessionAnalysis struct {
	Analysis  *analysis.Analysis
	ShotCount int
}

// AggregateStats is the unformatted dashboard summary over a set of sessions.
type AggregateStats struct {
	TotalSessions      int
	TotalShots         int
	AverageScore       float64
	AverageScoreNormal float64
	BestScore          float64
	BestScoreNormal    int
	BestTeiler         *float64
	AvgSpread          *float64
	AvgOffset          *OffsetAggregate
}

// OffsetAggregate is the shot-weighted mean center of impact.
type OffsetAggregate struct {
	X        float64
	Y        float64
	Distance float64
}

type weightedMean struct {
	sum    float64
	weight float64
}

func (w *weightedMean) add(v float64, weight int) {
	w.sum += v * float64(weight)
	w.weight += float64(weight)
}

func (w weightedMean) value() (float64, bool) {
	if w.weight == 0 {
		return 0, false
	}
	return w.sum / w.weight, true
}

// Aggregate combines sessions into shot-weighted figures. analyses is keyed by
// session id; sessions without an entry contribute to score totals only.
func Aggregate(sessions []models.SessionSummary, analyses map[string]SessionAnalysis) AggregateStats {
	stats := AggregateStats{TotalSessions: len(sessions)}

	var (
		decimalTotal float64
		normalTotal  int
		spread       weightedMean
		offsetX      weightedMean
		offsetY      weightedMean
		offsetDist   weightedMean
	)

	for _, s := range sessions {
		stats.TotalShots += s.ShotsCount

		dec := decimalRings(s)
		whole := wholeRings(s)
		decimalTotal += dec
		normalTotal += whole
		stats.BestScore = math.Max(stats.BestScore, dec)
		stats.BestScoreNormal = max(stats.BestScoreNormal, whole)

		if t, ok := bestTeiler(s); ok && (stats.BestTeiler == nil || t < *stats.BestTeiler) {
			stats.BestTeiler = &t
		}

		sa, ok := analyses[s.SessionID]
		if !ok || sa.Analysis == nil || sa.ShotCount <= 0 {
			continue
		}
		if sa.Analysis.Spread.Total > 0 {
			spread.add(sa.Analysis.Spread.Total, sa.ShotCount)
		}
		if c := sa.Analysis.Center; c.Offset > 0 {
			offsetX.add(c.X, sa.ShotCount)
			offsetY.add(c.Y, sa.ShotCount)
			offsetDist.add(c.Offset, sa.ShotCount)
		}
	}

	if stats.TotalShots > 0 {
		stats.AverageScore = decimalTotal / float64(stats.TotalShots)
		stats.AverageScoreNormal = float64(normalTotal) / float64(stats.TotalShots)
	}
	if v, ok := spread.value(); ok {
		stats.AvgSpread = &v
	}
	if d, ok := offsetDist.value(); ok {
		x, _ := offsetX.value()
		y, _ := offsetY.value()
		stats.AvgOffset = &OffsetAggregate{X: x, Y: y, Distance: d}
	}
	return stats
}

// DashboardStats is AggregateStats rendered with display precision.
type DashboardStats struct {
	TotalSessions      int          `json:"total_sessions"`
	TotalShots         int          `json:"total_shots"`
	AverageScore       string       `json:"average_score"`
	BestScore          string       `json:"best_score"`
	AverageScoreNormal string       `json:"average_score_normal"`
	BestScoreNormal    string       `json:"best_score_normal"`
	BestTeiler         *string      `json:"best_teiler"`
	AvgSpread          *string      `json:"avg_spread"`
	AvgOffset          *OffsetStats `json:"avg_offset"`
}

type OffsetStats struct {
	X         string          `json:"x"`
	Y         string          `json:"y"`
	Distance  string          `json:"distance"`
	Direction OffsetDirection `json:"direction"`
}

type OffsetDirection struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Format applies the display precision: one decimal for decimal rings and
// teiler, whole numbers for whole rings, two decimals for spread and offset.
func (a AggregateStats) Format() DashboardStats {
	out := DashboardStats{
		TotalSessions:      a.TotalSessions,
		TotalShots:         a.TotalShots,
		AverageScore:       fixed(a.AverageScore, 1),
		BestScore:          fixed(a.BestScore, 1),
		AverageScoreNormal: fixed(a.AverageScoreNormal, 0),
		BestScoreNormal:    fixed(float64(a.BestScoreNormal), 0),
	}
	if a.BestTeiler != nil {
		s := fixed(*a.BestTeiler, 1)
		out.BestTeiler = &s
	}
	if a.AvgSpread != nil {
		s := fixed(*a.AvgSpread, 2)
		out.AvgSpread = &s
	}
	if o := a.AvgOffset; o != nil {
		dir := analysis.DirectionOf(o.X, o.Y)
		out.AvgOffset = &OffsetStats{
			X:         fixed(o.X, 2),
			Y:         fixed(o.Y, 2),
			Distance:  fixed(o.Distance, 2),
			Direction: OffsetDirection{X: dir.X, Y: dir.Y},
		}
	}
	return out
}

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 1074

// fixed rounds the exact binary value of v half away from zero, so 2.675
// (stored as 2.67499...) prints as "2.67".
func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.NewFromFloat(0).StringFixed(places)
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		d = decimal.NewFromFloat(v)
	}
	return d.StringFixed(places)
}

// round returns v rounded half away from zero to places decimals.
func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
