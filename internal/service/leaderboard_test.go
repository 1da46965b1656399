package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/internal/service"
)

func member(id int64, username, shooterID string) models.Member {
	return models.Member{
		ID:        id,
		Username:  username,
		ShooterID: shooterID,
		IsLinked:  true,
		CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildLeaderboard_AvgScoreWeighted(t *testing.T) {
	members := []models.Member{
		member(2, "bernd", "Berger|Bernd"),
		member(1, "anna", "Müller|Anna"),
	}
	sessions := map[int64][]models.SessionSummary{
		1: {session("a1", day(2024, 1, 5), 10, 900)},
		2: {
			session("b1", day(2024, 1, 5), 5, 400),
			session("b2", day(2024, 1, 6), 5, 400),
		},
	}

	entries, total := service.BuildLeaderboard(members, sessions, service.SortAvgScore, 0)

	require.Len(t, entries, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, int64(1), entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.InDelta(t, 9.0, entries[0].AvgScore, 1e-9)
	assert.Equal(t, "Anna", entries[0].Firstname)
	assert.Equal(t, "Müller", entries[0].Lastname)

	assert.Equal(t, int64(2), entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.InDelta(t, 8.0, entries[1].AvgScore, 1e-9)
	assert.Equal(t, 2, entries[1].TotalSessions)
	assert.Equal(t, 10, entries[1].TotalShots)
	assert.InDelta(t, 40.0, entries[1].BestSessionScore, 1e-9)
}

func TestBuildLeaderboard_SortKeys(t *testing.T) {
	members := []models.Member{
		member(1, "a", "A|A"),
		member(2, "b", "B|B"),
		member(3, "c", "C|C"),
	}
	sessions := map[int64][]models.SessionSummary{
		1: {session("1", day(2024, 1, 5), 60, 6000)},
		2: {
			withTeiler(session("2a", day(2024, 1, 5), 10, 1010), 90),
			withTeiler(session("2b", day(2024, 1, 6), 10, 1020), 40),
		},
		3: {withTeiler(session("3", day(2024, 1, 5), 20, 2050), 150)},
	}

	cases := []struct {
		key  service.SortKey
		want []int64
	}{
		{service.SortAvgScore, []int64{3, 2, 1}},
		{service.SortBestTeiler, []int64{2, 3, 1}},
		{service.SortTotalSessions, []int64{2, 1, 3}},
		{service.SortTotalShots, []int64{1, 2, 3}},
		{service.SortBestSessionScore, []int64{1, 3, 2}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			entries, _ := service.BuildLeaderboard(members, sessions, tc.key, 0)
			got := make([]int64, len(entries))
			for i, e := range entries {
				got[i] = e.UserID
				assert.Equal(t, i+1, e.Rank)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildLeaderboard_OmitsMembersWithoutSessions(t *testing.T) {
	members := []models.Member{member(1, "a", "A|A"), member(2, "b", "B|B")}
	sessions := map[int64][]models.SessionSummary{
		2: {session("x", day(2024, 1, 5), 10, 900)},
	}

	entries, total := service.BuildLeaderboard(members, sessions, service.SortAvgScore, 0)

	require.Len(t, entries, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(2), entries[0].UserID)
}

func TestBuildLeaderboard_LimitAfterRanking(t *testing.T) {
	var members []models.Member
	sessions := map[int64][]models.SessionSummary{}
	for i := int64(1); i <= 5; i++ {
		members = append(members, member(i, "m", "X|Y"))
		sessions[i] = []models.SessionSummary{session("s", day(2024, 1, 5), 10, 800+i*10)}
	}

	entries, total := service.BuildLeaderboard(members, sessions, service.SortAvgScore, 2)

	assert.Equal(t, 5, total)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].UserID)
	assert.Equal(t, int64(4), entries[1].UserID)
}

func TestBuildLeaderboard_StableOnTies(t *testing.T) {
	members := []models.Member{member(7, "g", "G|G"), member(3, "c", "C|C")}
	sessions := map[int64][]models.SessionSummary{
		7: {session("7", day(2024, 1, 5), 10, 900)},
		3: {session("3", day(2024, 1, 5), 10, 900)},
	}

	entries, _ := service.BuildLeaderboard(members, sessions, service.SortAvgScore, 0)
	assert.Equal(t, int64(7), entries[0].UserID)
	assert.Equal(t, int64(3), entries[1].UserID)
}

func TestBuildLeaderboard_MalformedShooterID(t *testing.T) {
	tests := []struct {
		shooterID   string
		last, first string
	}{
		{"broken", "broken", "Unknown"},
		{"|Anna", "Shooter", "Anna"},
		{"Müller|", "Müller", "Unknown"},
		{"", "Shooter", "Unknown"},
		{"Müller|Anna|extra", "Müller", "Anna"},
	}
	for _, tt := range tests {
		t.Run(tt.shooterID, func(t *testing.T) {
			members := []models.Member{member(1, "a", tt.shooterID)}
			sessions := map[int64][]models.SessionSummary{1: {session("x", day(2024, 1, 5), 10, 900)}}

			entries, _ := service.BuildLeaderboard(members, sessions, service.SortAvgScore, 0)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.last, entries[0].Lastname)
			assert.Equal(t, tt.first, entries[0].Firstname)
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, err := service.ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, service.SortAvgScore, k)

	k, err = service.ParseSortKey("bestTeiler")
	require.NoError(t, err)
	assert.Equal(t, service.SortBestTeiler, k)

	_, err = service.ParseSortKey("name")
	assert.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestTimeRange(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tr, err := service.ParseTimeRange("all")
	require.NoError(t, err)
	assert.Equal(t, "all", tr.String())

	tr, err = service.ParseTimeRange("30")
	require.NoError(t, err)
	assert.Equal(t, 30, tr.Days)
	assert.Equal(t, "30", tr.String())

	for _, bad := range []string{"-1", "0", "month"} {
		_, err := service.ParseTimeRange(bad)
		assert.ErrorIs(t, err, service.ErrInvalidArgument, bad)
	}

	sessions := []models.SessionSummary{
		session("old", now.AddDate(0, 0, -31), 10, 900),
		session("edge", now.AddDate(0, 0, -30), 10, 900),
		session("new", now.AddDate(0, 0, -1), 10, 900),
	}
	kept := tr.Filter(sessions, now)
	require.Len(t, kept, 2)
	assert.Equal(t, "edge", kept[0].SessionID)
	assert.Len(t, service.AllTime.Filter(sessions, now), 3)
}
