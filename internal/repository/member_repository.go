package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/godilite/shotstats/internal/repository/models"
)

// Querier is the subset of *pgxpool.Pool used by MemberRepository.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// MemberRepository reads club accounts from the club's Postgres database.
type MemberRepository struct {
	db Querier
}

func NewMemberRepository(db Querier) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetMember(ctx context.Context, id int64) (models.Member, error) {
	const query = `
		SELECT id, username, shooter_id, is_linked, is_admin, created_at
		FROM users
		WHERE id = $1`

	m, err := scanMember(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Member{}, fmt.Errorf("member %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("query GetMember: %w", err)
	}
	return m, nil
}

// ListLinkedMembers returns members linked to a shooter, ordered by username.
func (r *MemberRepository) ListLinkedMembers(ctx context.Context) ([]models.Member, error) {
	const query = `
		SELECT id, username, shooter_id, is_linked, is_admin, created_at
		FROM users
		WHERE is_linked = true AND shooter_id IS NOT NULL AND shooter_id <> ''
		ORDER BY username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListLinkedMembers: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ListLinkedMembers row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListLinkedMembers: %w", err)
	}
	return members, nil
}

// Ping checks the club database with a trivial statement.
func (r *MemberRepository) Ping(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "SELECT 1")
	return err
}

func scanMember(row pgx.Row) (models.Member, error) {
	var (
		m         models.Member
		shooterID *string
		createdAt time.Time
	)
	if err := row.Scan(&m.ID, &m.Username, &shooterID, &m.IsLinked, &m.IsAdmin, &createdAt); err != nil {
		return models.Member{}, err
	}
	if shooterID != nil {
		m.ShooterID = *shooterID
	}
	m.CreatedAt = createdAt
	return m, nil
}
