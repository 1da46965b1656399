package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by repositories when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// SessionSummary is one row of the scoring system's session table. Score
// fields keep the scoring system's integer encoding: TotalScoreRaw and
// TotalScoreDecimalRaw are tenths of a ring, BestTeilerRaw is tenths of a
// teiler unit.
type SessionSummary struct {
	SessionID            string    `json:"session_id"`
	ShooterID            string    `json:"shooter_id"`
	SessionDate          time.Time `json:"session_date"`
	Discipline           string    `json:"discipline"`
	ShotsCount           int       `json:"shots_count"`
	TotalScoreRaw        int64     `json:"total_score_raw"`
	TotalScoreDecimalRaw int64     `json:"total_score_decimal_raw"`
	BestTeilerRaw        *int64    `json:"best_teiler_raw,omitempty"`
}

// ShotRecord is one hit as stored by the scoring system. X and Y are
// hundredths of a millimetre, Ring/Ring01/Teiler01 are tenths.
type ShotRecord struct {
	ShotNumber int    `json:"shot_number"`
	Stance     int    `json:"stance"`
	X          int64  `json:"x"`
	Y          int64  `json:"y"`
	Ring       int64  `json:"ring"`
	Ring01     int64  `json:"ring01"`
	Teiler01   *int64 `json:"teiler01,omitempty"`
	InnerTen   int    `json:"inner_ten"`
}

// Member is a club account. ShooterID links it to the scoring system.
type Member struct {
	ID        int64
	Username  string
	ShooterID string
	IsLinked  bool
	IsAdmin   bool
	CreatedAt time.Time
}

// ShooterID builds the "Lastname|Firstname" identifier.
func ShooterID(lastname, firstname string) string {
	return lastname + "|" + firstname
}

// ParseShooterID splits a "Lastname|Firstname" identifier.
func ParseShooterID(id string) (lastname, firstname string, err error) {
	last, first, ok := strings.Cut(id, "|")
	if !ok || last == "" || first == "" {
		return "", "", fmt.Errorf("malformed shooter id %q", id)
	}
	return last, first, nil
}

// Shooter is a distinct name pair found in the scoring system.
type Shooter struct {
	ID           string    `json:"id"`
	Lastname     string    `json:"lastname"`
	Firstname    string    `json:"firstname"`
	LastActivity time.Time `json:"last_activity"`
}
