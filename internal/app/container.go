package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"delivery-routing/internal/config"
	geogw "delivery-routing/internal/gateway/geo"
	"delivery-routing/internal/http/handlers"
	"delivery-routing/internal/http/router"
	"delivery-routing/internal/logx"
	"delivery-routing/internal/metrics"
	geoport "delivery-routing/internal/ports/geo"
	"delivery-routing/internal/repository"
	"delivery-routing/internal/service/delivery"
	"delivery-routing/internal/service/orders"
	"delivery-routing/internal/service/planning"
	"delivery-routing/internal/service/routing"
	"delivery-routing/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
	worker    bool
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// WithWorker enables the kafka worker providers.
func (b *ContainerBuilder) WithWorker() *ContainerBuilder {
	b.worker = true
	return b
}

// MustBuild builds and returns a new dig container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGeo(container); err != nil {
		return nil, fmt.Errorf("geo: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if b.worker {
		if err := registerKafka(container); err != nil {
			return nil, fmt.Errorf("kafka: %w", err)
		}
		return container, nil
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP service container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the kafka worker container.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().WithWorker().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerGeo(container *dig.Container) error {
	providerGeo := func(cfg *config.Config, logger logx.Logger) geoport.Provider {
		client, err := geogw.NewClient(cfg.Geo)
		if err != nil {
			logger.Warn("geo provider disabled", logx.Any("err", err))
			return geogw.Unavailable{}
		}
		return geogw.NewRetryingProvider(client, logger, metrics.NewGeoRetriesTotal(), geogw.RetryConfig{
			MaxAttempts: cfg.Geo.MaxAttempts,
			BaseDelay:   cfg.Geo.BaseDelay,
			MaxDelay:    cfg.Geo.MaxDelay,
		})
	}
	providerRedis := func(cfg *config.Config) *redis.Client {
		return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	providerGeocoder := func(p geoport.Provider, rdb *redis.Client, cfg *config.Config, logger logx.Logger) geoport.Geocoder {
		return geogw.NewCachedGeocoder(p, rdb, cfg.Redis.GeocodeTTL, logger)
	}
	return provideAll(container, providerGeo, providerRedis, providerGeocoder)
}

func registerService(container *dig.Container) error {
	providerOptimizer := func(p geoport.Provider, cfg *config.Config, logger logx.Logger) *routing.Optimizer {
		return routing.NewOptimizer(p, routing.StrategyTwoPass, cfg.Geo.Timeout, metrics.NewGeoFailuresTotal(), logger)
	}
	providerPlanner := func(
		dirs *repository.DirectionRepo,
		cats *repository.CategoryRepo,
		optimizer *routing.Optimizer,
		geocoder geoport.Geocoder,
		cfg *config.Config,
		logger logx.Logger,
	) *planning.Planner {
		return planning.NewPlanner(dirs, cats, optimizer, geocoder, cfg.Delivery.OperationTimeout, logger)
	}
	providerDelivery := func(
		repo *repository.DeliveryRepo,
		factory delivery.StatusFactory,
		cfg *config.Config,
		logger logx.Logger,
	) *delivery.Service {
		return delivery.NewService(repo, factory, cfg.Delivery.OperationTimeout,
			metrics.NewDeliveriesAutoReleasedTotal(), logger)
	}
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewDirectionRepo,
		repository.NewCategoryRepo,
		repository.NewOrderRepo,
		delivery.NewStatusFactory,
		providerOptimizer,
		providerPlanner,
		providerDelivery,
	)
}

func registerHTTP(container *dig.Container) error {
	routerProvider := func(
		logger logx.Logger,
		base *handlers.Handlers,
		routes *handlers.RoutingHandler,
		deliveries *handlers.DeliveryHandler,
	) http.Handler {
		return router.New(router.Deps{
			Base:     base,
			Routing:  routes,
			Delivery: deliveries,
			Logger:   logger,
		})
	}
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewPlanningUsecase,
		handlers.NewRoutingHandler,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		routerProvider,
		serverProvider,
	)
}

func registerKafka(container *dig.Container) error {
	providerProcessor := func(svc *delivery.Service, repo *repository.DeliveryRepo) *orders.Processor {
		return orders.NewProcessor(svc, repo)
	}
	providerConsumer := func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
		return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, p.Handle)
	}
	return provideAll(container, providerProcessor, providerConsumer)
}
