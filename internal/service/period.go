package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/godilite/shotstats/internal/repository/models"
)

type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

const defaultTrendLimit = 12

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Daily, Weekly, Monthly:
		return p, nil
	case "":
		return Monthly, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidArgument, s)
	}
}

// Bucket is one calendar period and the sessions that fall into it, in input
// order.
type Bucket struct {
	Key      string
	Label    string
	Start    time.Time
	Sessions []models.SessionSummary
}

// bucketOf computes the bucket start, key and label for t in UTC. Weeks start
// on Monday and carry their ISO-8601 week number.
func bucketOf(t time.Time, p Period) (start time.Time, key, label string) {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case Weekly:
		start = day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		_, week := day.ISOWeek()
		return start, start.Format(time.DateOnly), fmt.Sprintf("KW %d", week)
	case Monthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.Format("2006-01"), start.Format("Jan 06")
	default:
		return day, day.Format(time.DateOnly), day.Format("02.01.")
	}
}

// GroupByPeriod buckets sessions, sorts buckets chronologically and keeps the
// most recent limit of them (12 when limit <= 0).
func GroupByPeriod(sessions []models.SessionSummary, p Period, limit int) []Bucket {
	if limit <= 0 {
		limit = defaultTrendLimit
	}

	index := make(map[string]int)
	var buckets []Bucket
	for _, s := range sessions {
		start, key, label := bucketOf(s.SessionDate, p)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key, Label: label, Start: start})
		}
		buckets[i].Sessions = append(buckets[i].Sessions, s)
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })

	if len(buckets) > limit {
		buckets = buckets[len(buckets)-limit:]
	}
	return buckets
}
