package service_test

import (
	"time"

	"github.com/godilite/shotstats/internal/repository/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 18, 0, 0, 0, time.UTC)
}

func raw(v int64) *int64 { return &v }

func session(id string, date time.Time, shots int, decimalRaw int64) models.SessionSummary {
	return models.SessionSummary{
		SessionID:            id,
		ShooterID:            "Müller|Anna",
		SessionDate:          date,
		Discipline:           "LG 40 Schuss",
		ShotsCount:           shots,
		TotalScoreRaw:        decimalRaw / 10 * 10,
		TotalScoreDecimalRaw: decimalRaw,
	}
}

func withTeiler(s models.SessionSummary, teilerRaw int64) models.SessionSummary {
	s.BestTeilerRaw = raw(teilerRaw)
	return s
}

// shotRecords builds records from mm coordinates.
func shotRecords(points ...[2]float64) []models.ShotRecord {
	out := make([]models.ShotRecord, len(points))
	for i, p := range points {
		out[i] = models.ShotRecord{
			ShotNumber: i + 1,
			X:          int64(p[0] * 100),
			Y:          int64(p[1] * 100),
			Ring:       100,
			Ring01:     102,
		}
	}
	return out
}
