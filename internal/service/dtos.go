package service

import (
	"time"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/target"
)

// RecentSession is a session list row enriched with its group analysis.
type RecentSession struct {
	SessionID        string          `json:"session_id"`
	SessionDate      time.Time       `json:"session_date"`
	Discipline       string          `json:"discipline"`
	ShotsCount       int             `json:"shots_count"`
	TotalScore       float64         `json:"total_score"`
	TotalScoreNormal int             `json:"total_score_normal"`
	Analysis         *SessionMetrics `json:"analysis,omitempty"`
}

// SessionMetrics is the short per-session analysis shown in session lists.
// BestTeiler prefers the hardware value over the analyser's.
type SessionMetrics struct {
	BestTeiler float64             `json:"best_teiler"`
	AvgTeiler  *float64            `json:"avg_teiler"`
	Spread     *float64            `json:"spread"`
	Offset     *float64            `json:"offset"`
	Direction  *analysis.Direction `json:"direction"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type RecentSessionsPage struct {
	Sessions   []RecentSession `json:"sessions"`
	Pagination Pagination      `json:"pagination"`
}

// SessionDetail is the full analysis of one session.
type SessionDetail struct {
	SessionID    string                        `json:"session_id"`
	ShooterID    string                        `json:"shooter_id"`
	SessionDate  time.Time                     `json:"session_date"`
	Discipline   string                        `json:"discipline"`
	TotalScore   float64                       `json:"total_score"`
	Target       target.Kind                   `json:"target"`
	Rings        []target.Ring                 `json:"rings"`
	Shots        []analysis.Shot               `json:"shots"`
	Analysis     *analysis.Analysis            `json:"analysis"`
	BestPair     *analysis.TeilerPair          `json:"best_pair,omitempty"`
	Distribution []analysis.DistributionBucket `json:"distribution"`
}

type ScorePoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}
