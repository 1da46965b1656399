package service

import (
	"context"

	"github.com/godilite/shotstats/internal/repository/models"
)

// SessionStore reads sessions and shots from the scoring system.
type SessionStore interface {
	ListShooterSessions(ctx context.Context, shooterID string) ([]models.SessionSummary, error)
	GetSession(ctx context.Context, sessionID string) (models.SessionSummary, error)
	GetSessionShots(ctx context.Context, sessionID string) ([]models.ShotRecord, error)
}

// MemberStore reads club accounts.
type MemberStore interface {
	GetMember(ctx context.Context, id int64) (models.Member, error)
	ListLinkedMembers(ctx context.Context) ([]models.Member, error)
}
