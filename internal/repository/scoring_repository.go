package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/pkg/database"
)

// ScoringRepository reads the electronic scoring system's tables. Queries stick
// to SQL understood by both MySQL and SQLite.
type ScoringRepository struct {
	db    *sql.DB
	retry database.RetryPolicy
}

func NewScoringRepository(db *sql.DB, retry database.RetryPolicy) *ScoringRepository {
	return &ScoringRepository{db: db, retry: retry}
}

const sessionColumns = `ScheibenID, Nachname, Vorname, Zeitstempel, Disziplin, TotalRing, TotalRing01, Trefferzahl, BesterTeiler01`

// ListShooterSessions returns every session of the shooter, newest first.
func (r *ScoringRepository) ListShooterSessions(ctx context.Context, shooterID string) ([]models.SessionSummary, error) {
	lastname, firstname, err := models.ParseShooterID(shooterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + sessionColumns + `
		FROM Scheiben
		WHERE Nachname = ? AND Vorname = ?
		ORDER BY Zeitstempel DESC, ScheibenID DESC`

	var sessions []models.SessionSummary
	err = database.Retry(ctx, r.retry, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, lastname, firstname)
		if err != nil {
			return err
		}
		defer rows.Close()

		sessions = sessions[:0]
		for rows.Next() {
			s, err := scanSession(rows)
			if err != nil {
				return fmt.Errorf("scan ListShooterSessions row: %w", err)
			}
			sessions = append(sessions, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query ListShooterSessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns one session by id or models.ErrNotFound.
func (r *ScoringRepository) GetSession(ctx context.Context, sessionID string) (models.SessionSummary, error) {
	query := `SELECT ` + sessionColumns + ` FROM Scheiben WHERE ScheibenID = ?`

	var session models.SessionSummary
	err := database.Retry(ctx, r.retry, func(ctx context.Context) error {
		s, err := scanSession(r.db.QueryRowContext(ctx, query, sessionID))
		if err != nil {
			return err
		}
		session = s
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionSummary{}, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if err != nil {
		return models.SessionSummary{}, fmt.Errorf("query GetSession: %w", err)
	}
	return session, nil
}

// GetSessionShots returns the shots of a session ordered by shot number.
func (r *ScoringRepository) GetSessionShots(ctx context.Context, sessionID string) ([]models.ShotRecord, error) {
	const query = `
		SELECT Treffer, Stellung, x, y, Ring, Ring01, Teiler01, Innenzehner
		FROM Treffer
		WHERE ScheibenID = ?
		ORDER BY Treffer ASC`

	var shots []models.ShotRecord
	err := database.Retry(ctx, r.retry, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, sessionID)
		if err != nil {
			return err
		}
		defer rows.Close()

		shots = shots[:0]
		for rows.Next() {
			var (
				rec                         models.ShotRecord
				stance, ring, ring01, inner sql.NullInt64
				x, y, teiler                sql.NullInt64
			)
			if err := rows.Scan(&rec.ShotNumber, &stance, &x, &y, &ring, &ring01, &teiler, &inner); err != nil {
				return fmt.Errorf("scan GetSessionShots row: %w", err)
			}
			rec.Stance = int(stance.Int64)
			rec.X = x.Int64
			rec.Y = y.Int64
			rec.Ring = ring.Int64
			rec.Ring01 = ring01.Int64
			rec.InnerTen = int(inner.Int64)
			if teiler.Valid {
				v := teiler.Int64
				rec.Teiler01 = &v
			}
			shots = append(shots, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query GetSessionShots: %w", err)
	}
	return shots, nil
}

// ListShooters returns each distinct shooter with the time of their latest
// session, ordered by name.
func (r *ScoringRepository) ListShooters(ctx context.Context) ([]models.Shooter, error) {
	const query = `
		SELECT Nachname, Vorname, Zeitstempel
		FROM Scheiben
		WHERE Nachname IS NOT NULL AND Nachname <> ''
		  AND Vorname IS NOT NULL AND Vorname <> ''
		ORDER BY Nachname, Vorname, Zeitstempel DESC`

	var shooters []models.Shooter
	err := database.Retry(ctx, r.retry, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		shooters = shooters[:0]
		seen := make(map[string]bool)
		for rows.Next() {
			var s models.Shooter
			var ts sql.NullTime
			if err := rows.Scan(&s.Lastname, &s.Firstname, &ts); err != nil {
				return fmt.Errorf("scan ListShooters row: %w", err)
			}
			s.ID = models.ShooterID(s.Lastname, s.Firstname)
			// Rows arrive newest first per shooter.
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			s.LastActivity = ts.Time
			shooters = append(shooters, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query ListShooters: %w", err)
	}
	return shooters, nil
}

func (r *ScoringRepository) Ping(ctx context.Context) error {
	return database.Retry(ctx, r.retry, func(ctx context.Context) error {
		return r.db.PingContext(ctx)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.SessionSummary, error) {
	var (
		s                         models.SessionSummary
		lastname, firstname, disc sql.NullString
		total, decimal, shots     sql.NullInt64
		best                      sql.NullInt64
		ts                        sql.NullTime
	)
	if err := row.Scan(&s.SessionID, &lastname, &firstname, &ts, &disc, &total, &decimal, &shots, &best); err != nil {
		return models.SessionSummary{}, err
	}

	s.ShooterID = models.ShooterID(lastname.String, firstname.String)
	s.SessionDate = ts.Time
	s.Discipline = disc.String
	s.TotalScoreRaw = total.Int64
	s.TotalScoreDecimalRaw = decimal.Int64
	s.ShotsCount = int(shots.Int64)
	if best.Valid {
		v := best.Int64
		s.BestTeilerRaw = &v
	}
	return s, nil
}
