package mocks

import (
	"context"
	"errors"

	"github.com/godilite/shotstats/internal/repository/models"
)

// MockSessionStore is a func-field implementation of service.SessionStore.
type MockSessionStore struct {
	ListShooterSessionsFunc func(ctx context.Context, shooterID string) ([]models.SessionSummary, error)
	GetSessionFunc          func(ctx context.Context, sessionID string) (models.SessionSummary, error)
	GetSessionShotsFunc     func(ctx context.Context, sessionID string) ([]models.ShotRecord, error)
}

func (m *MockSessionStore) ListShooterSessions(ctx context.Context, shooterID string) ([]models.SessionSummary, error) {
	if m.ListShooterSessionsFunc != nil {
		return m.ListShooterSessionsFunc(ctx, shooterID)
	}
	return nil, errors.New("ListShooterSessionsFunc not implemented")
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (models.SessionSummary, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return models.SessionSummary{}, errors.New("GetSessionFunc not implemented")
}

func (m *MockSessionStore) GetSessionShots(ctx context.Context, sessionID string) ([]models.ShotRecord, error) {
	if m.GetSessionShotsFunc != nil {
		return m.GetSessionShotsFunc(ctx, sessionID)
	}
	return nil, errors.New("GetSessionShotsFunc not implemented")
}

// MockMemberStore is a func-field implementation of service.MemberStore.
type MockMemberStore struct {
	GetMemberFunc         func(ctx context.Context, id int64) (models.Member, error)
	ListLinkedMembersFunc func(ctx context.Context) ([]models.Member, error)
}

func (m *MockMemberStore) GetMember(ctx context.Context, id int64) (models.Member, error) {
	if m.GetMemberFunc != nil {
		return m.GetMemberFunc(ctx, id)
	}
	return models.Member{}, errors.New("GetMemberFunc not implemented")
}

func (m *MockMemberStore) ListLinkedMembers(ctx context.Context) ([]models.Member, error) {
	if m.ListLinkedMembersFunc != nil {
		return m.ListLinkedMembersFunc(ctx)
	}
	return nil, errors.New("ListLinkedMembersFunc not implemented")
}
