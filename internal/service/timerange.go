package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/godilite/shotstats/internal/repository/models"
)

// TimeRange limits sessions to the last Days days. Zero means no limit.
type TimeRange struct {
	Days int
}

var AllTime = TimeRange{}

// ParseTimeRange accepts "all", "" or a positive number of days.
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" || s == "all" {
		return AllTime, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 {
		return TimeRange{}, fmt.Errorf("%w: time range must be \"all\" or a positive number of days, got %q", ErrInvalidArgument, s)
	}
	return TimeRange{Days: days}, nil
}

func (r TimeRange) String() string {
	if r.Days <= 0 {
		return "all"
	}
	return strconv.Itoa(r.Days)
}

// Filter keeps sessions recorded at or after now minus the range.
func (r TimeRange) Filter(sessions []models.SessionSummary, now time.Time) []models.SessionSummary {
	if r.Days <= 0 {
		return sessions
	}
	cutoff := now.AddDate(0, 0, -r.Days)
	out := make([]models.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		if !s.SessionDate.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out
}
