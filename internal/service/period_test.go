package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/internal/service"
)

func keys(buckets []service.Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}

func TestGroupByPeriod_Monthly(t *testing.T) {
	sessions := []models.SessionSummary{
		session("c", day(2024, 2, 1), 10, 900),
		session("a", day(2024, 1, 5), 10, 900),
		session("b", day(2024, 1, 20), 10, 900),
	}

	buckets := service.GroupByPeriod(sessions, service.Monthly, 12)

	require.Len(t, buckets, 2)
	assert.Equal(t, []string{"2024-01", "2024-02"}, keys(buckets))
	assert.Equal(t, "Jan 24", buckets[0].Label)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Len(t, buckets[0].Sessions, 2)
	assert.Equal(t, "a", buckets[0].Sessions[0].SessionID)
}

func TestGroupByPeriod_WeeklyISO(t *testing.T) {
	sessions := []models.SessionSummary{
		session("sun-before", day(2024, 12, 29), 10, 900),
		session("mon", day(2024, 12, 30), 10, 900),
		session("sun-after", day(2025, 1, 5), 10, 900),
	}

	buckets := service.GroupByPeriod(sessions, service.Weekly, 0)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-12-23", buckets[0].Key)
	assert.Equal(t, "KW 52", buckets[0].Label)
	assert.Equal(t, "2024-12-30", buckets[1].Key)
	assert.Equal(t, "KW 1", buckets[1].Label)
	assert.Len(t, buckets[1].Sessions, 2)
}

func TestGroupByPeriod_DailyUsesUTC(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	sessions := []models.SessionSummary{
		session("late", time.Date(2024, 3, 1, 1, 0, 0, 0, berlin), 10, 900),
	}

	buckets := service.GroupByPeriod(sessions, service.Daily, 12)

	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-02-29", buckets[0].Key)
	assert.Equal(t, "29.02.", buckets[0].Label)
}

func TestGroupByPeriod_KeepsMostRecent(t *testing.T) {
	var sessions []models.SessionSummary
	for m := 1; m <= 14; m++ {
		sessions = append(sessions, session("s", time.Date(2023, time.Month(m), 10, 0, 0, 0, 0, time.UTC), 10, 900))
	}

	buckets := service.GroupByPeriod(sessions, service.Monthly, 0)
	require.Len(t, buckets, 12)
	assert.Equal(t, "2023-03", buckets[0].Key)
	assert.Equal(t, "2024-02", buckets[11].Key)

	buckets = service.GroupByPeriod(sessions, service.Monthly, 3)
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, keys(buckets))
}

func TestParsePeriodAndMetric(t *testing.T) {
	p, err := service.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, service.Monthly, p)

	_, err = service.ParsePeriod("yearly")
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	m, err := service.ParseMetric("avgSpread")
	require.NoError(t, err)
	assert.Equal(t, service.MetricAvgSpread, m)

	_, err = service.ParseMetric("median")
	assert.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestBuildTrend(t *testing.T) {
	noShots := session("empty", day(2024, 1, 9), 0, 0)
	wholeOnly := session("whole", day(2024, 2, 3), 10, 0)
	wholeOnly.TotalScoreRaw = 950

	sessions := []models.SessionSummary{
		withTeiler(session("a", day(2024, 1, 5), 10, 1003), 84),
		withTeiler(session("b", day(2024, 1, 20), 20, 1950), 52),
		noShots,
		wholeOnly,
	}
	buckets := service.GroupByPeriod(sessions, service.Monthly, 12)

	t.Run("avgScore", func(t *testing.T) {
		points := service.BuildTrend(buckets, service.MetricAvgScore, nil)
		require.Len(t, points, 2)
		assert.Equal(t, 9.84, points[0].Value)
		assert.Equal(t, 3, points[0].Count)
		assert.Equal(t, "Jan 24", points[0].Period)
		assert.Equal(t, "2024-01", points[0].Key)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
		assert.Equal(t, 9.5, points[1].Value)
	})

	t.Run("bestScore", func(t *testing.T) {
		points := service.BuildTrend(buckets, service.MetricBestScore, nil)
		assert.Equal(t, 195.0, points[0].Value)
		assert.Equal(t, 95.0, points[1].Value)
	})

	t.Run("bestTeiler", func(t *testing.T) {
		points := service.BuildTrend(buckets, service.MetricBestTeiler, nil)
		assert.Equal(t, 5.2, points[0].Value)
		assert.Zero(t, points[1].Value)
	})

	t.Run("avgSpread and avgOffset", func(t *testing.T) {
		analyses := map[string]service.SessionAnalysis{
			"a": {ShotCount: 10, Analysis: &analysis.Analysis{Spread: analysis.Spread{Total: 1.111}, Center: analysis.Center{Offset: 2}}},
			"b": {ShotCount: 20, Analysis: &analysis.Analysis{Spread: analysis.Spread{Total: 2.222}, Center: analysis.Center{Offset: 0}}},
		}

		spread := service.BuildTrend(buckets, service.MetricAvgSpread, analyses)
		assert.Equal(t, 1.85, spread[0].Value)
		assert.Zero(t, spread[1].Value)

		offset := service.BuildTrend(buckets, service.MetricAvgOffset, analyses)
		assert.Equal(t, 2.0, offset[0].Value)
	})
}
