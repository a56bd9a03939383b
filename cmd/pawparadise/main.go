package main

import (
	"context"
	"log/slog"
	"os"

	"pawparadise/config"
	"pawparadise/internal/delivery"
	"pawparadise/internal/delivery/api"
	apimiddleware "pawparadise/internal/delivery/api/middleware"
	"pawparadise/internal/delivery/api/router/handler"
	"pawparadise/internal/infra/auth"
	"pawparadise/internal/infra/cache"
	logs "pawparadise/internal/infra/log"
	"pawparadise/internal/infra/metrics"
	"pawparadise/internal/infra/persistence/postgres"
	"pawparadise/internal/infra/pubsub"
	"pawparadise/internal/infra/qrcode"
	"pawparadise/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			metrics.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewReviewRepository,
			postgres.NewPromoCodeRepository,
			postgres.NewTestimonialRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			cache.New,
			qrcode.New,
			metrics.NewRecorder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCatalogService,
			impl.NewOrderService,
			impl.NewReviewService,
			impl.NewPromoService,
			impl.NewTestimonialService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewAuthHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewReviewHandler,
			handler.NewStorefrontHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches every delivery once the rest of the graph has started.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						params.Logger.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
