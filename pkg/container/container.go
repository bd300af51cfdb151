package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"

	"storefront-backend/internal/domains/currency"

	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	catalogService "storefront-backend/internal/domains/catalog/service"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartRepo "storefront-backend/internal/domains/cart/repository"
	cartService "storefront-backend/internal/domains/cart/service"

	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
)

// Container is the root of the dependency graph: infrastructure first,
// then repositories, services, handlers. Everything is a singleton for
// the process lifetime.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	AsynqClient *asynq.Client

	Converter *currency.Converter

	CatalogRepo catalogRepo.RepositoryInterface
	CartRepo    cartRepo.RepositoryInterface
	OrderRepo   orderRepo.RepositoryInterface

	CatalogService catalogService.ServiceInterface
	CartService    cartService.ServiceInterface
	OrderService   orderService.ServiceInterface

	CatalogHandler *catalogHandler.Handler
	CartHandler    *cartHandler.Handler
	OrderHandler   *orderHandler.Handler
}

// NewContainer builds the whole graph. Initialization order matters:
// config, then infrastructure, then repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	db := database.NewPostgresDB(&database.DBConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		Username:       cfg.Database.User,
		Password:       cfg.Database.Password,
		DBName:         cfg.Database.Database,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       10,
		MinConns:       2,
		MaxRetries:     5,
		RetryDelay:     3 * time.Second,
		ConnectTimeout: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.Converter = currency.NewConverter(
		currency.NewHTTPRateSource(cfg.Currency.RateURL),
		cfg.Currency.BaseCurrency,
		cfg.Currency.CacheTTL,
	)

	c.CatalogRepo = catalogRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.CartRepo = cartRepo.NewPostgresRepository(db.Pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(db.Pool)

	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo, c.Converter)
	c.CartService = cartService.NewCartService(c.CartRepo, c.CatalogRepo, c.Converter, cartService.Config{
		MaxQuantityPerItem:    cfg.Store.MaxQuantityPerItem,
		FreeDeliveryThreshold: cfg.Store.FreeDeliveryThreshold,
		DeliveryFee:           cfg.Store.DeliveryFee,
	})
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.CartService, c.AsynqClient)

	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close redis", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
