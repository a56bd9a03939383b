package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"pawparadise/config"
	"pawparadise/internal/domain/lifecycle"
	"pawparadise/internal/errors"
	"pawparadise/internal/infra/auth"
	"pawparadise/internal/infra/cache"
	logs "pawparadise/internal/infra/log"
	"pawparadise/internal/infra/metrics"
	"pawparadise/internal/infra/persistence/postgres"
	"pawparadise/internal/infra/persistence/seed"
	"pawparadise/internal/infra/pubsub"
	"pawparadise/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	seedPath := flag.String("seed", "config/seed.yaml", "path to the seed file")
	skipSeed := flag.Bool("skip-seed", false, "only migrate the schema")
	flag.Parse()

	var (
		db     *gorm.DB
		seeder *seed.Seeder
		logger *slog.Logger
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewPromoCodeRepository,
			postgres.NewTestimonialRepository,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			cache.New,
			metrics.New,
			metrics.NewRecorder,
			impl.NewAdminService,
			seed.NewSeeder,
		),
		pubsub.Module,
		fx.Populate(&db, &seeder, &logger),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		slog.Error("Failed to start migration", slog.Any("error", err))
		os.Exit(1)
	}

	runErr := run(context.Background(), db, seeder, logger, *seedPath, *skipSeed)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Warn("Failed to stop cleanly", slog.Any("error", err))
	}

	if runErr != nil {
		logger.Error("Migration failed", slog.Any("error", runErr))
		os.Exit(1)
	}
}

func run(ctx context.Context, db *gorm.DB, seeder *seed.Seeder, logger *slog.Logger, seedPath string, skipSeed bool) error {
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("Schema migrated")

	if skipSeed {
		return nil
	}

	data, err := seed.Load(seedPath)
	if err != nil {
		return err
	}

	if err := seeder.Apply(ctx, data); err != nil {
		return errors.Wrap(err, "failed to seed database")
	}
	logger.Info("Seed applied", slog.String("path", seedPath))

	return nil
}
