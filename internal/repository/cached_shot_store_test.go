package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/shotstats/internal/repository"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/pkg/cache"
)

type countingSource struct {
	calls int
	shots []models.ShotRecord
	err   error
}

func (s *countingSource) GetSessionShots(context.Context, string) ([]models.ShotRecord, error) {
	s.calls++
	return s.shots, s.err
}

type jsonStore struct {
	data map[string][]byte
}

func (j *jsonStore) Get(_ context.Context, key string, dest any) error {
	raw, ok := j.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (j *jsonStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	j.data[key] = raw
	return nil
}

func TestCachedShotStore(t *testing.T) {
	teiler := int64(31)
	src := &countingSource{shots: []models.ShotRecord{{ShotNumber: 1, X: 12, Y: -4, Ring01: 104, Teiler01: &teiler}}}
	store := &jsonStore{data: map[string][]byte{}}
	cached := repository.NewCachedShotStore(src, store, time.Hour, nil, nil)

	first, err := cached.GetSessionShots(context.Background(), "42")
	require.NoError(t, err)
	second, err := cached.GetSessionShots(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first, second)
	require.NotNil(t, second[0].Teiler01)
	assert.EqualValues(t, 31, *second[0].Teiler01)
	assert.Contains(t, store.data, "shots:42")
}

func TestCachedShotStore_SourceError(t *testing.T) {
	boom := errors.New("db down")
	src := &countingSource{err: boom}
	cached := repository.NewCachedShotStore(src, cache.Nop{}, time.Hour, nil, nil)

	_, err := cached.GetSessionShots(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
}
