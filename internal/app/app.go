package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/godilite/shotstats/internal/config"
	handler "github.com/godilite/shotstats/internal/grpc"
	"github.com/godilite/shotstats/internal/repository"
	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/internal/service"
	"github.com/godilite/shotstats/pkg/cache"
	dbbuilder "github.com/godilite/shotstats/pkg/database"
	"github.com/godilite/shotstats/pkg/metrics"
)

// App owns the long-lived resources shared by the server and the CLI.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	scoring  *sql.DB
	club     *pgxpool.Pool
	cache    handler.Cacher
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	Shooters *repository.ScoringRepository
	Members  *repository.MemberRepository
	Stats    *service.StatsService
}

// scoringStore reads sessions from the scoring database and shots through the
// shot cache.
type scoringStore struct {
	*repository.ScoringRepository
	shots *repository.CachedShotStore
}

func (s scoringStore) GetSessionShots(ctx context.Context, sessionID string) ([]models.ShotRecord, error) {
	return s.shots.GetSessionShots(ctx, sessionID)
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	retry := dbbuilder.RetryPolicy{Attempts: cfg.ScoringDB.RetryAttempts, Delay: cfg.ScoringDB.RetryDelay}
	scoringDB, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.ScoringDB.Driver),
		dbbuilder.WithDataSource(cfg.ScoringDB.DSN),
		dbbuilder.WithMaxOpenConns(cfg.ScoringDB.MaxOpenConns),
		dbbuilder.WithMaxIdleConns(cfg.ScoringDB.MaxIdleConns),
		dbbuilder.WithConnMaxLifetime(cfg.ScoringDB.ConnMaxLifetime),
		dbbuilder.WithRetry(retry.Attempts, retry.Delay),
	)
	if err != nil {
		return nil, fmt.Errorf("scoring database init failed: %w", err)
	}
	logger.Info("scoring database pool initialized", zap.String("driver", cfg.ScoringDB.Driver))

	clubDB, err := dbbuilder.NewPool(ctx, dbbuilder.PoolConfig{
		DSN:             cfg.ClubDB.DSN,
		MaxConns:        cfg.ClubDB.MaxConns,
		MinConns:        cfg.ClubDB.MinConns,
		ConnMaxLifetime: cfg.ClubDB.ConnMaxLifetime,
	})
	if err != nil {
		scoringDB.Close()
		return nil, fmt.Errorf("club database init failed: %w", err)
	}
	logger.Info("club database pool initialized")

	var cacheClient handler.Cacher = cache.Nop{}
	if cfg.Redis.Enabled {
		c, err := cache.New(ctx,
			cache.WithAddress(cfg.Redis.Addr),
			cache.WithPassword(cfg.Redis.Password),
			cache.WithDB(cfg.Redis.DB),
			cache.WithPrefix(cfg.Redis.Prefix),
		)
		if err != nil {
			clubDB.Close()
			scoringDB.Close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		cacheClient = c
		logger.Info("cache client initialized", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Info("redis disabled, caching turned off")
	}

	scoringRepo := repository.NewScoringRepository(scoringDB, retry)
	sessions := scoringStore{
		ScoringRepository: scoringRepo,
		shots:             repository.NewCachedShotStore(scoringRepo, cacheClient, cfg.Redis.ShotTTL, logger.Named("shot-cache"), m),
	}
	members := repository.NewMemberRepository(clubDB)

	stats := service.NewStatsService(sessions, members, logger,
		service.WithMetrics(m),
		service.WithConcurrency(cfg.Analysis.Concurrency),
		service.WithFetchTimeout(cfg.Analysis.FetchTimeout),
	)

	return &App{
		cfg:      cfg,
		logger:   logger,
		scoring:  scoringDB,
		club:     clubDB,
		cache:    cacheClient,
		registry: registry,
		metrics:  m,
		Shooters: scoringRepo,
		Members:  members,
		Stats:    stats,
	}, nil
}

// Close releases the cache and both database pools.
func (a *App) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if a.club != nil {
		a.club.Close()
	}
	if a.scoring != nil {
		if err := a.scoring.Close(); err != nil {
			a.logger.Error("database shutdown error", zap.Error(err))
		}
	}
}

// Ping checks both databases.
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.Shooters.Ping(ctx); err != nil {
		return fmt.Errorf("scoring database: %w", err)
	}
	if err := a.Members.Ping(ctx); err != nil {
		return fmt.Errorf("club database: %w", err)
	}
	return nil
}
