//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"net"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	pb "github.com/godilite/shotstats/api/v1"
	handler "github.com/godilite/shotstats/internal/grpc"
	"github.com/godilite/shotstats/internal/repository"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/internal/service"
	"github.com/godilite/shotstats/pkg/database"
	grpcsrv "github.com/godilite/shotstats/pkg/grpc/server"
	"github.com/godilite/shotstats/tests/e2e/mocks"
)

const (
	anna   int64 = 1
	jonas  int64 = 2
	guest  int64 = 3
	nobody int64 = 99
)

func setupTestDB(t *testing.T) *sql.DB {
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
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	// Anna: two sessions, centers 2mm right and 1mm left.
	// Jonas: one single-shot session.
	_, err = db.Exec(`
	INSERT INTO Scheiben VALUES
	(1, 'Müller', 'Anna', '2024-03-01 18:00:00', 'LG 40 Schuss', 200, 205, 2, 152),
	(2, 'Müller', 'Anna', '2024-03-08 18:00:00', 'LG 40 Schuss', 190, 195, 2, NULL),
	(3, 'Schmidt', 'Jonas', '2024-03-02 19:00:00', 'LG 40 Schuss', 100, 104, 1, 30);

	INSERT INTO Treffer VALUES
	(1, 1, 1, 100, 0, 10, 103, NULL, 0),
	(1, 2, 1, 300, 0, 10, 101, NULL, 0),
	(2, 1, 1, -100, 0, 9, 98, NULL, 0),
	(2, 2, 1, -100, 0, 9, 97, NULL, 0),
	(3, 1, 1, 0, 50, 10, 104, 30, 1);
	`)
	require.NoError(t, err)

	return db
}

func members() mocks.MemberDirectory {
	joined := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return mocks.MemberDirectory{
		anna:  {ID: anna, Username: "anna", ShooterID: models.ShooterID("Müller", "Anna"), IsLinked: true, CreatedAt: joined},
		jonas: {ID: jonas, Username: "jonas", ShooterID: models.ShooterID("Schmidt", "Jonas"), IsLinked: true, CreatedAt: joined},
		guest: {ID: guest, Username: "guest", CreatedAt: joined},
	}
}

type sessionStore struct {
	*repository.ScoringRepository
	shots *repository.CachedShotStore
}

func (s sessionStore) GetSessionShots(ctx context.Context, id string) ([]models.ShotRecord, error) {
	return s.shots.GetSessionShots(ctx, id)
}

// startServer runs the full handler stack on an in-memory listener and returns
// a client connected to it.
func startServer(t *testing.T) (pb.AnalyticsClient, *mocks.InMemoryCache) {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	cache := mocks.NewInMemoryCache()

	repo := repository.NewScoringRepository(db, database.RetryPolicy{Attempts: 1})
	store := sessionStore{
		ScoringRepository: repo,
		shots:             repository.NewCachedShotStore(repo, cache, time.Hour, logger, nil),
	}
	svc := service.NewStatsService(store, members(), logger)
	handlers := handler.NewGRPCHandlers(svc, cache, logger, 5*time.Minute, nil)

	lis := bufconn.Listen(1 << 20)
	srv, err := grpcsrv.New(grpcsrv.WithListener(lis), grpcsrv.WithLogger(logger), grpcsrv.WithLogging(true))
	require.NoError(t, err)
	srv.Register(&pb.Analytics_ServiceDesc, handlers)
	srv.Start()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewAnalyticsClient(conn), cache
}

func TestE2E_GetDashboardStats(t *testing.T) {
	client, cache := startServer(t)
	ctx := context.Background()

	resp, err := client.GetDashboardStats(ctx, &pb.DashboardStatsRequest{UserId: anna})
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.TotalSessions)
	assert.EqualValues(t, 4, resp.TotalShots)
	assert.Equal(t, "10.0", resp.AverageScore)
	assert.Equal(t, "20.5", resp.BestScore)
	assert.Equal(t, "10", resp.AverageScoreNormal)
	assert.Equal(t, "20", resp.BestScoreNormal)
	require.NotNil(t, resp.BestTeiler)
	assert.Equal(t, "15.2", *resp.BestTeiler)

	require.NotNil(t, resp.AvgOffset)
	assert.Equal(t, "0.50", resp.AvgOffset.X)
	assert.Equal(t, "0.00", resp.AvgOffset.Y)
	assert.Equal(t, "1.50", resp.AvgOffset.Distance)
	assert.Equal(t, "right", resp.AvgOffset.DirectionX)
	assert.Equal(t, "centered", resp.AvgOffset.DirectionY)

	// Only the first session has spread; the second is a single hole.
	require.NotNil(t, resp.AvgSpread)

	// The second call is served from the response cache.
	assert.Eventually(t, func() bool { return cache.Len() >= 3 }, time.Second, 10*time.Millisecond)
	again, err := client.GetDashboardStats(ctx, &pb.DashboardStatsRequest{UserId: anna})
	require.NoError(t, err)
	assert.Equal(t, resp, again)
}

func TestE2E_MemberErrors(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.GetDashboardStats(ctx, &pb.DashboardStatsRequest{UserId: guest})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = client.GetDashboardStats(ctx, &pb.DashboardStatsRequest{UserId: nobody})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetTrend(ctx, &pb.TrendRequest{UserId: anna, Metric: "median"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestE2E_GetLeaderboard(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.GetLeaderboard(context.Background(), &pb.LeaderboardRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 2)
	assert.EqualValues(t, 2, resp.TotalPlayers)
	assert.Equal(t, "avgScore", resp.SortBy)
	assert.Equal(t, "all", resp.TimeRange)

	assert.Equal(t, jonas, resp.Entries[0].UserId)
	assert.InDelta(t, 10.4, resp.Entries[0].AvgScore, 0.001)
	assert.Equal(t, anna, resp.Entries[1].UserId)
	assert.InDelta(t, 10.0, resp.Entries[1].AvgScore, 0.001)
	assert.Equal(t, "Anna", resp.Entries[1].Firstname)

	byTeiler, err := client.GetLeaderboard(context.Background(), &pb.LeaderboardRequest{SortBy: "bestTeiler"})
	require.NoError(t, err)
	assert.Equal(t, jonas, byTeiler.Entries[0].UserId)
}

func TestE2E_GetTrend(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.GetTrend(context.Background(), &pb.TrendRequest{UserId: anna, Metric: "bestScore", Period: "weekly"})
	require.NoError(t, err)

	require.Len(t, resp.Points, 2)
	assert.EqualValues(t, 2, resp.TotalSessions)
	assert.Equal(t, "2024-02-26", resp.Points[0].Key)
	assert.InDelta(t, 20.5, resp.Points[0].Value, 0.001)
	assert.Equal(t, "2024-03-04", resp.Points[1].Key)
	assert.InDelta(t, 19.5, resp.Points[1].Value, 0.001)
}

func TestE2E_GetRecentSessions(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.GetRecentSessions(context.Background(), &pb.RecentSessionsRequest{UserId: anna, PerPage: 1})
	require.NoError(t, err)

	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "2", resp.Sessions[0].SessionId)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)
	assert.EqualValues(t, 2, resp.Pagination.TotalPages)
}

func TestE2E_GetSessionAnalysis(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	resp, err := client.GetSessionAnalysis(ctx, &pb.SessionAnalysisRequest{SessionId: "1"})
	require.NoError(t, err)

	assert.Equal(t, "LG", resp.Target)
	require.Len(t, resp.Shots, 2)
	assert.InDelta(t, 1.0, resp.Shots[0].X, 1e-9)
	require.NotNil(t, resp.Analysis)
	assert.InDelta(t, 2.0, resp.Analysis.Center.X, 1e-9)
	assert.Equal(t, "2.0mm right", resp.Analysis.Center.Label)
	require.NotNil(t, resp.BestPair)
	assert.InDelta(t, 2.0, resp.BestPair.Distance, 1e-9)
	assert.Equal(t, []*pb.DistributionBucket{{Ring: 10, Count: 2}}, resp.Distribution)

	_, err = client.GetSessionAnalysis(ctx, &pb.SessionAnalysisRequest{SessionId: "404"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestE2E_DistributionAndScoreTrend(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	dist, err := client.GetShotDistribution(ctx, &pb.ShotDistributionRequest{UserId: anna})
	require.NoError(t, err)
	assert.Equal(t, []*pb.DistributionBucket{{Ring: 9, Count: 2}}, dist.Buckets)

	trend, err := client.GetScoreTrend(ctx, &pb.ScoreTrendRequest{UserId: anna})
	require.NoError(t, err)
	assert.Equal(t, []*pb.ScorePoint{
		{Date: "2024-03-01", Score: 20.5},
		{Date: "2024-03-08", Score: 19.5},
	}, trend.Points)
}
