package service

import (
	"fmt"
	"math"
	"time"

	"github.com/godilite/shotstats/internal/repository/models"
)

type Metric string

const (
	MetricAvgScore   Metric = "avgScore"
	MetricBestScore  Metric = "bestScore"
	MetricBestTeiler Metric = "bestTeiler"
	MetricAvgSpread  Metric = "avgSpread"
	MetricAvgOffset  Metric = "avgOffset"
)

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricAvgScore, MetricBestScore, MetricBestTeiler, MetricAvgSpread, MetricAvgOffset:
		return m, nil
	case "":
		return MetricAvgScore, nil
	default:
		return "", fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, s)
	}
}

// needsShots reports whether the metric is computed from shot analyses.
func (m Metric) needsShots() bool {
	return m == MetricAvgSpread || m == MetricAvgOffset
}

// TrendPoint is the value of one metric in one calendar bucket.
type TrendPoint struct {
	Period string    `json:"period"`
	Key    string    `json:"key"`
	Value  float64   `json:"value"`
	Count  int       `json:"count"`
	Date   time.Time `json:"date"`
}

type TrendSeries struct {
	Metric        Metric       `json:"metric"`
	Period        Period       `json:"period"`
	Points        []TrendPoint `json:"points"`
	TotalSessions int          `json:"total_sessions"`
}

// BuildTrend reduces each bucket to one point. Values are rounded to two
// decimals; a bucket without qualifying sessions yields 0.
func BuildTrend(buckets []Bucket, m Metric, analyses map[string]SessionAnalysis) []TrendPoint {
	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, TrendPoint{
			Period: b.Label,
			Key:    b.Key,
			Value:  round(reduceBucket(b.Sessions, m, analyses), 2),
			Count:  len(b.Sessions),
			Date:   b.Start,
		})
	}
	return points
}

func reduceBucket(sessions []models.SessionSummary, m Metric, analyses map[string]SessionAnalysis) float64 {
	switch m {
	case MetricBestScore:
		var best float64
		for _, s := range sessions {
			best = math.Max(best, sessionRings(s))
		}
		return best

	case MetricBestTeiler:
		best := math.Inf(1)
		for _, s := range sessions {
			if t, ok := bestTeiler(s); ok {
				best = math.Min(best, t)
			}
		}
		if math.IsInf(best, 1) {
			return 0
		}
		return best

	case MetricAvgSpread, MetricAvgOffset:
		var w weightedMean
		for _, s := range sessions {
			sa, ok := analyses[s.SessionID]
			if !ok || sa.Analysis == nil || sa.ShotCount <= 0 {
				continue
			}
			v := sa.Analysis.Spread.Total
			if m == MetricAvgOffset {
				v = sa.Analysis.Center.Offset
			}
			if v > 0 {
				w.add(v, sa.ShotCount)
			}
		}
		v, _ := w.value()
		return v

	default:
		var rings float64
		var shots int
		for _, s := range sessions {
			r := sessionRings(s)
			if s.ShotsCount > 0 && r > 0 {
				rings += r
				shots += s.ShotsCount
			}
		}
		if shots == 0 {
			return 0
		}
		return rings / float64(shots)
	}
}
