package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/shotstats/internal/repository"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/pkg/database"
)

func setupScoringDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE Scheiben (
		ScheibenID INTEGER PRIMARY KEY,
		Nachname TEXT,
		Vorname TEXT,
		Zeitstempel DATETIME NOT NULL,
		Disziplin TEXT,
		TotalRing INTEGER,
		TotalRing01 INTEGER,
		Trefferzahl INTEGER,
		BesterTeiler01 INTEGER
	);
	CREATE TABLE Treffer (
		ScheibenID INTEGER NOT NULL,
		Treffer INTEGER NOT NULL,
		Stellung INTEGER,
		x INTEGER,
		y INTEGER,
		Ring INTEGER,
		Ring01 INTEGER,
		Teiler01 INTEGER,
		Innenzehner INTEGER
	);
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func seedScoringData(t *testing.T, db *sql.DB) {
	t.Helper()

	sessions := []struct {
		id         int
		last, name string
		ts         string
		discipline any
		total      int
		decimal    int
		shots      int
		best       any
	}{
		{1, "Müller", "Anna", "2024-03-01 18:00:00", "LG 40 Schuss", 900, 975, 10, 152},
		{2, "Müller", "Anna", "2024-03-08 18:30:00", "LG 40 Schuss", 880, 951, 10, nil},
		{3, "Schmidt", "Jonas", "2024-03-02 19:00:00", "KK 50m", 850, 0, 10, 0},
		{4, "", "", "2024-03-03 19:00:00", nil, 0, 0, 0, nil},
	}
	for _, s := range sessions {
		_, err := db.Exec(`INSERT INTO Scheiben VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.id, s.last, s.name, s.ts, s.discipline, s.total, s.decimal, s.shots, s.best)
		require.NoError(t, err)
	}

	shots := []struct {
		session, number int
		x, y            int
		ring, ring01    int
		teiler          any
		inner           int
	}{
		{1, 2, 150, -40, 100, 103, 155, 0},
		{1, 1, 10, 20, 100, 107, 22, 1},
		{1, 3, -300, 90, 90, 96, nil, 0},
	}
	for _, s := range shots {
		_, err := db.Exec(`INSERT INTO Treffer VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?)`,
			s.session, s.number, s.x, s.y, s.ring, s.ring01, s.teiler, s.inner)
		require.NoError(t, err)
	}
}

func TestScoringRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupScoringDB(t)
	defer db.Close()
	seedScoringData(t, db)

	repo := repository.NewScoringRepository(db, database.RetryPolicy{Attempts: 2, Delay: time.Millisecond})

	t.Run("ListShooterSessions newest first", func(t *testing.T) {
		sessions, err := repo.ListShooterSessions(ctx, "Müller|Anna")
		require.NoError(t, err)
		require.Len(t, sessions, 2)

		assert.Equal(t, "2", sessions[0].SessionID)
		assert.Equal(t, "1", sessions[1].SessionID)
		assert.Equal(t, "Müller|Anna", sessions[0].ShooterID)
		assert.Nil(t, sessions[0].BestTeilerRaw)

		first := sessions[1]
		assert.Equal(t, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), first.SessionDate.UTC())
		assert.Equal(t, "LG 40 Schuss", first.Discipline)
		assert.Equal(t, 10, first.ShotsCount)
		assert.EqualValues(t, 900, first.TotalScoreRaw)
		assert.EqualValues(t, 975, first.TotalScoreDecimalRaw)
		require.NotNil(t, first.BestTeilerRaw)
		assert.EqualValues(t, 152, *first.BestTeilerRaw)
	})

	t.Run("ListShooterSessions unknown shooter", func(t *testing.T) {
		sessions, err := repo.ListShooterSessions(ctx, "Nobody|Here")
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("ListShooterSessions malformed id", func(t *testing.T) {
		_, err := repo.ListShooterSessions(ctx, "no-separator")
		assert.Error(t, err)
	})

	t.Run("GetSession", func(t *testing.T) {
		s, err := repo.GetSession(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, "Schmidt|Jonas", s.ShooterID)
		assert.Equal(t, "KK 50m", s.Discipline)
		require.NotNil(t, s.BestTeilerRaw)
		assert.Zero(t, *s.BestTeilerRaw)
	})

	t.Run("GetSession not found", func(t *testing.T) {
		_, err := repo.GetSession(ctx, "99")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("GetSessionShots ordered by number", func(t *testing.T) {
		shots, err := repo.GetSessionShots(ctx, "1")
		require.NoError(t, err)
		require.Len(t, shots, 3)

		assert.Equal(t, []int{1, 2, 3}, []int{shots[0].ShotNumber, shots[1].ShotNumber, shots[2].ShotNumber})
		assert.EqualValues(t, 10, shots[0].X)
		assert.EqualValues(t, 20, shots[0].Y)
		assert.EqualValues(t, 107, shots[0].Ring01)
		assert.Equal(t, 1, shots[0].InnerTen)
		require.NotNil(t, shots[0].Teiler01)
		assert.EqualValues(t, 22, *shots[0].Teiler01)
		assert.Nil(t, shots[2].Teiler01)
		assert.EqualValues(t, -300, shots[2].X)
	})

	t.Run("GetSessionShots empty session", func(t *testing.T) {
		shots, err := repo.GetSessionShots(ctx, "2")
		require.NoError(t, err)
		assert.Empty(t, shots)
	})

	t.Run("ListShooters skips unnamed rows", func(t *testing.T) {
		shooters, err := repo.ListShooters(ctx)
		require.NoError(t, err)
		require.Len(t, shooters, 2)

		assert.Equal(t, "Müller|Anna", shooters[0].ID)
		assert.Equal(t, time.Date(2024, 3, 8, 18, 30, 0, 0, time.UTC), shooters[0].LastActivity.UTC())
		assert.Equal(t, "Schmidt|Jonas", shooters[1].ID)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
