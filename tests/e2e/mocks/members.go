package mocks

import (
	"context"

	"github.com/godilite/shotstats/internal/repository/models"
)

// MemberDirectory is a fixed set of club members.
type MemberDirectory map[int64]models.Member

func (d MemberDirectory) GetMember(ctx context.Context, id int64) (models.Member, error) {
	m, ok := d[id]
	if !ok {
		return models.Member{}, models.ErrNotFound
	}
	return m, nil
}

func (d MemberDirectory) ListLinkedMembers(ctx context.Context) ([]models.Member, error) {
	out := make([]models.Member, 0, len(d))
	for _, m := range d {
		if m.IsLinked && m.ShooterID != "" {
			out = append(out, m)
		}
	}
	return out, nil
}
