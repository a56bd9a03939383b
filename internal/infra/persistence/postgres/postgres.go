package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"pawparadise/config"
	"pawparadise/internal/domain/lifecycle"
	"pawparadise/internal/errors"
	"pawparadise/internal/infra/metrics"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolSampleInterval    = 5 * time.Second
	poolWaitWarnThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// New opens the pool, pings it on start and samples its stats until stop.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Multi-statement writes go through TransactionManager.Execute, so the
	// implicit per-statement transaction is redundant.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	sampler := &poolSampler{
		db:      sqlDB,
		logger:  params.Logger,
		metrics: params.Metrics,
	}
	sampleCtx, stopSampling := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go sampler.run(sampleCtx, poolSampleInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopSampling()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// poolSampler exports pool stats as gauges and logs connection waits.
type poolSampler struct {
	db      *sql.DB
	logger  *slog.Logger
	metrics *metrics.Metrics
	prev    sql.DBStats
}

func (s *poolSampler) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.prev = s.db.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample(ctx, s.db.Stats())
		}
	}
}

func (s *poolSampler) sample(ctx context.Context, cur sql.DBStats) {
	defer func() { s.prev = cur }()

	if s.metrics != nil {
		s.metrics.ObserveDBPool(cur)
	}

	waits := cur.WaitCount - s.prev.WaitCount
	if waits <= 0 || s.logger == nil {
		return
	}

	waited := cur.WaitDuration - s.prev.WaitDuration
	level := slog.LevelDebug
	if waited >= poolWaitWarnThreshold {
		level = slog.LevelWarn
	}

	s.logger.LogAttrs(ctx, level, "Postgres pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	)
}
