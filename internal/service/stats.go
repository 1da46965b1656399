package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/internal/target"
	"github.com/godilite/shotstats/pkg/metrics"
)

const (
	defaultFetchTimeout = 5 * time.Second
	defaultConcurrency  = 8

	defaultPerPage   = 10
	maxPerPage       = 50
	scoreTrendLength = 20
)

// StatsService answers dashboard, trend and leaderboard queries.
type StatsService struct {
	sessions     SessionStore
	members      MemberStore
	logger       *zap.Logger
	metrics      *metrics.Metrics
	concurrency  int
	fetchTimeout time.Duration
	now          func() time.Time
}

type Option func(*StatsService)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *StatsService) { s.metrics = m }
}

// WithConcurrency bounds parallel shot fetches per request.
func WithConcurrency(n int) Option {
	return func(s *StatsService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithFetchTimeout bounds each individual storage call.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *StatsService) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *StatsService) { s.now = now }
}

// NewStatsService creates a StatsService. Both stores are required.
func NewStatsService(sessions SessionStore, members MemberStore, logger *zap.Logger, opts ...Option) *StatsService {
	if sessions == nil {
		panic("session store must not be nil")
	}
	if members == nil {
		panic("member store must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}

	s := &StatsService{
		sessions:     sessions,
		members:      members,
		logger:       logger,
		concurrency:  defaultConcurrency,
		fetchTimeout: defaultFetchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboardStats summarizes a member's sessions within the time range.
func (s *StatsService) GetDashboardStats(ctx context.Context, userID int64, tr TimeRange) (DashboardStats, error) {
	sessions, err := s.memberSessions(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}
	sessions = tr.Filter(sessions, s.now())

	analyses := s.analyzeSessions(ctx, sessions)
	if err := ctx.Err(); err != nil {
		return DashboardStats{}, err
	}

	stats := Aggregate(sessions, analyses)
	s.logger.Info("computed dashboard stats",
		zap.Int64("user_id", userID),
		zap.String("time_range", tr.String()),
		zap.Int("sessions", stats.TotalSessions),
		zap.Int("analysed", len(analyses)))

	return stats.Format(), nil
}

// GetTrend returns one point per calendar bucket for the metric.
func (s *StatsService) GetTrend(ctx context.Context, userID int64, m Metric, p Period, limit int) (TrendSeries, error) {
	series := TrendSeries{Metric: m, Period: p, Points: []TrendPoint{}}

	sessions, err := s.memberSessions(ctx, userID)
	if err != nil {
		return TrendSeries{}, err
	}
	series.TotalSessions = len(sessions)
	if len(sessions) == 0 {
		return series, nil
	}

	buckets := GroupByPeriod(sessions, p, limit)

	var analyses map[string]SessionAnalysis
	if m.needsShots() {
		var inRange []models.SessionSummary
		for _, b := range buckets {
			inRange = append(inRange, b.Sessions...)
		}
		analyses = s.analyzeSessions(ctx, inRange)
		if err := ctx.Err(); err != nil {
			return TrendSeries{}, err
		}
	}

	series.Points = BuildTrend(buckets, m, analyses)
	return series, nil
}

// GetLeaderboard ranks every linked member. Members whose sessions cannot be
// loaded are left out.
func (s *StatsService) GetLeaderboard(ctx context.Context, key SortKey, tr TimeRange, limit int) (Leaderboard, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	members, err := s.members.ListLinkedMembers(dbCtx)
	cancel()
	if err != nil {
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	now := s.now()
	var mu sync.Mutex
	byMember := make(map[int64][]models.SessionSummary, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, m := range members {
		if m.ShooterID == "" {
			continue
		}
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
			defer cancel()

			sessions, err := s.sessions.ListShooterSessions(fetchCtx, m.ShooterID)
			if err != nil {
				s.logger.Warn("skipping member on leaderboard",
					zap.Int64("user_id", m.ID),
					zap.String("shooter_id", m.ShooterID),
					zap.Error(err))
				return nil
			}

			mu.Lock()
			byMember[m.ID] = tr.Filter(sessions, now)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Leaderboard{}, err
	}

	entries, total := BuildLeaderboard(members, byMember, key, limit)
	return Leaderboard{
		Entries:      entries,
		TotalPlayers: total,
		SortBy:       key,
		TimeRange:    tr.String(),
		GeneratedAt:  now.UTC(),
	}, nil
}

// GetRecentSessions pages through a member's sessions, newest first, and
// attaches a short analysis to each row on the page.
func (s *StatsService) GetRecentSessions(ctx context.Context, userID int64, tr TimeRange, page, perPage int) (RecentSessionsPage, error) {
	page = max(page, 1)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	perPage = min(perPage, maxPerPage)

	sessions, err := s.memberSessions(ctx, userID)
	if err != nil {
		return RecentSessionsPage{}, err
	}
	sessions = newestFirst(tr.Filter(sessions, s.now()))

	total := len(sessions)
	totalPages := (total + perPage - 1) / perPage
	from := min((page-1)*perPage, total)
	to := min(from+perPage, total)
	pageSessions := sessions[from:to]

	analyses := s.analyzeSessions(ctx, pageSessions)
	if err := ctx.Err(); err != nil {
		return RecentSessionsPage{}, err
	}

	rows := make([]RecentSession, 0, len(pageSessions))
	for _, sess := range pageSessions {
		rows = append(rows, recentSession(sess, analyses[sess.SessionID]))
	}

	return RecentSessionsPage{
		Sessions: rows,
		Pagination: Pagination{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

func recentSession(s models.SessionSummary, sa SessionAnalysis) RecentSession {
	row := RecentSession{
		SessionID:        s.SessionID,
		SessionDate:      s.SessionDate,
		Discipline:       s.Discipline,
		ShotsCount:       s.ShotsCount,
		TotalScore:       decimalRings(s),
		TotalScoreNormal: wholeRings(s),
	}

	hwTeiler, hasHW := bestTeiler(s)
	if a := sa.Analysis; a != nil {
		best := a.Teiler.Best
		if hasHW {
			best = hwTeiler
		}
		avg := a.Teiler.Average
		spread := a.Spread.Total
		offset := a.Center.Offset
		dir := a.Center.Direction
		row.Analysis = &SessionMetrics{
			BestTeiler: best,
			AvgTeiler:  &avg,
			Spread:     &spread,
			Offset:     &offset,
			Direction:  &dir,
		}
	} else if hasHW {
		row.Analysis = &SessionMetrics{BestTeiler: hwTeiler}
	}
	return row
}

// GetSessionAnalysis returns the decoded shots and full analysis of a session.
func (s *StatsService) GetSessionAnalysis(ctx context.Context, sessionID string) (SessionDetail, error) {
	if sessionID == "" {
		return SessionDetail{}, fmt.Errorf("%w: session id is required", ErrInvalidArgument)
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	session, err := s.sessions.GetSession(dbCtx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return SessionDetail{}, ErrSessionNotFound
	}
	if err != nil {
		return SessionDetail{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	records, err := s.sessions.GetSessionShots(dbCtx, sessionID)
	if err != nil {
		return SessionDetail{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	shots := decodeShots(records)
	if len(shots) == 0 {
		return SessionDetail{}, ErrNoShots
	}

	kind := target.KindForDiscipline(session.Discipline)
	detail := SessionDetail{
		SessionID:    session.SessionID,
		ShooterID:    session.ShooterID,
		SessionDate:  session.SessionDate,
		Discipline:   session.Discipline,
		TotalScore:   sessionRings(session),
		Target:       kind,
		Rings:        target.Rings(kind),
		Shots:        shots,
		Analysis:     analysis.Analyze(shots),
		Distribution: analysis.ScoreDistribution(shots),
	}
	if pair, ok := analysis.BestTeilerPair(shots); ok {
		detail.BestPair = &pair
	}
	return detail, nil
}

// GetShotDistribution counts the whole-ring scores of the member's most recent
// session. It is empty when the member has no sessions.
func (s *StatsService) GetShotDistribution(ctx context.Context, userID int64) ([]analysis.DistributionBucket, error) {
	sessions, err := s.memberSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []analysis.DistributionBucket{}, nil
	}
	latest := newestFirst(sessions)[0]

	dbCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	records, err := s.sessions.GetSessionShots(dbCtx, latest.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return analysis.ScoreDistribution(decodeShots(records)), nil
}

// GetScoreTrend returns the totals of the last 20 sessions, oldest first.
func (s *StatsService) GetScoreTrend(ctx context.Context, userID int64) ([]ScorePoint, error) {
	sessions, err := s.memberSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := newestFirst(sessions)
	if len(recent) > scoreTrendLength {
		recent = recent[:scoreTrendLength]
	}

	points := make([]ScorePoint, len(recent))
	for i, sess := range recent {
		points[len(recent)-1-i] = ScorePoint{
			Date:  sess.SessionDate.UTC().Format(time.DateOnly),
			Score: round(sessionRings(sess), 1),
		}
	}
	return points, nil
}

// resolveShooter maps a club member to their scoring-system shooter id.
func (s *StatsService) resolveShooter(ctx context.Context, userID int64) (string, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	member, err := s.members.GetMember(dbCtx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return "", ErrMemberNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if !member.IsLinked && !member.IsAdmin {
		return "", ErrNotLinked
	}
	if member.ShooterID == "" {
		return "", ErrNotLinked
	}
	return member.ShooterID, nil
}

func (s *StatsService) memberSessions(ctx context.Context, userID int64) ([]models.SessionSummary, error) {
	shooterID, err := s.resolveShooter(ctx, userID)
	if err != nil {
		return nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	sessions, err := s.sessions.ListShooterSessions(dbCtx, shooterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return sessions, nil
}

// analyzeSessions fetches and analyses sessions in parallel. A session whose
// shots cannot be loaded is logged and left out of the result.
func (s *StatsService) analyzeSessions(ctx context.Context, sessions []models.SessionSummary) map[string]SessionAnalysis {
	results := make([]*SessionAnalysis, len(sessions))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, sess := range sessions {
		if sess.ShotsCount <= 0 {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			sa, err := s.analyzeSession(ctx, sess.SessionID)
			if err != nil {
				s.logger.Warn("skipping session in aggregate",
					zap.String("session_id", sess.SessionID),
					zap.Error(err))
				s.metrics.SessionSkipped("fetch")
				return nil
			}
			if sa == nil {
				s.metrics.SessionSkipped("no_shots")
				return nil
			}
			results[i] = sa
			s.metrics.SessionAnalyzed(time.Since(start))
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]SessionAnalysis, len(sessions))
	for i, sa := range results {
		if sa != nil {
			out[sessions[i].SessionID] = *sa
		}
	}
	return out
}

func (s *StatsService) analyzeSession(ctx context.Context, sessionID string) (*SessionAnalysis, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	records, err := s.sessions.GetSessionShots(fetchCtx, sessionID)
	if err != nil {
		return nil, err
	}
	shots := decodeShots(records)
	if len(shots) == 0 {
		return nil, nil
	}
	return &SessionAnalysis{Analysis: analysis.Analyze(shots), ShotCount: len(shots)}, nil
}
