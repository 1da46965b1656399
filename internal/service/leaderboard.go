package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/godilite/shotstats/internal/repository/models"
)

type SortKey string

const (
	SortAvgScore         SortKey = "avgScore"
	SortBestTeiler       SortKey = "bestTeiler"
	SortTotalSessions    SortKey = "totalSessions"
	SortTotalShots       SortKey = "totalShots"
	SortBestSessionScore SortKey = "bestSessionScore"
)

const defaultLeaderboardLimit = 50

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortAvgScore, SortBestTeiler, SortTotalSessions, SortTotalShots, SortBestSessionScore:
		return k, nil
	case "":
		return SortAvgScore, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, s)
	}
}

type LeaderboardEntry struct {
	Rank             int       `json:"rank"`
	UserID           int64     `json:"user_id"`
	Username         string    `json:"username"`
	Firstname        string    `json:"firstname"`
	Lastname         string    `json:"lastname"`
	TotalSessions    int       `json:"total_sessions"`
	TotalShots       int       `json:"total_shots"`
	AvgScore         float64   `json:"avg_score"`
	BestSessionScore float64   `json:"best_session_score"`
	BestTeiler       *float64  `json:"best_teiler"`
	MemberSince      time.Time `json:"member_since"`
}

type Leaderboard struct {
	Entries      []LeaderboardEntry `json:"entries"`
	TotalPlayers int                `json:"total_players"`
	SortBy       SortKey            `json:"sort_by"`
	TimeRange    string             `json:"time_range"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// memberEntry aggregates one member's sessions. ok is false when there are
// none.
func memberEntry(m models.Member, sessions []models.SessionSummary) (LeaderboardEntry, bool) {
	if len(sessions) == 0 {
		return LeaderboardEntry{}, false
	}

	e := LeaderboardEntry{
		UserID:        m.ID,
		Username:      m.Username,
		TotalSessions: len(sessions),
		MemberSince:   m.CreatedAt,
	}
	e.Lastname, e.Firstname = displayName(m.ShooterID)

	var rings float64
	for _, s := range sessions {
		r := sessionRings(s)
		rings += r
		e.TotalShots += s.ShotsCount
		e.BestSessionScore = math.Max(e.BestSessionScore, r)
		if t, ok := bestTeiler(s); ok && (e.BestTeiler == nil || t < *e.BestTeiler) {
			e.BestTeiler = &t
		}
	}
	if e.TotalShots > 0 {
		e.AvgScore = rings / float64(e.TotalShots)
	}
	return e, true
}

// BuildLeaderboard aggregates every member with sessions, sorts by key, assigns
// 1-based ranks and keeps the first limit entries (50 when limit <= 0).
// TotalPlayers counts every ranked member.
func BuildLeaderboard(members []models.Member, sessionsByMember map[int64][]models.SessionSummary, key SortKey, limit int) ([]LeaderboardEntry, int) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for _, m := range members {
		if e, ok := memberEntry(m, sessionsByMember[m.ID]); ok {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i], entries[j], key) })
	for i := range entries {
		entries[i].Rank = i + 1
	}

	total := len(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, total
}

func less(a, b LeaderboardEntry, key SortKey) bool {
	switch key {
	case SortBestTeiler:
		switch {
		case a.BestTeiler == nil:
			return false
		case b.BestTeiler == nil:
			return true
		default:
			return *a.BestTeiler < *b.BestTeiler
		}
	case SortTotalSessions:
		return a.TotalSessions > b.TotalSessions
	case SortTotalShots:
		return a.TotalShots > b.TotalShots
	case SortBestSessionScore:
		return a.BestSessionScore > b.BestSessionScore
	default:
		return a.AvgScore > b.AvgScore
	}
}

// displayName splits a "Lastname|Firstname" shooter id. Each part missing on
// its own falls back to a placeholder, so an id without a separator is taken
// as the last name.
func displayName(shooterID string) (lastname, firstname string) {
	parts := strings.Split(shooterID, "|")
	lastname = parts[0]
	if len(parts) > 1 {
		firstname = parts[1]
	}
	if lastname == "" {
		lastname = "Shooter"
	}
	if firstname == "" {
		firstname = "Unknown"
	}
	return lastname, firstname
}
