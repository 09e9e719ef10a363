package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"pharmastore-backend/internal/config"
	infraCache "pharmastore-backend/internal/infrastructure/cache"
	"pharmastore-backend/internal/infrastructure/database"
	"pharmastore-backend/pkg/cache"

	cartHandler "pharmastore-backend/internal/domains/cart/handler"
	cartService "pharmastore-backend/internal/domains/cart/service"
	cartStorage "pharmastore-backend/internal/domains/cart/storage"
	productHandler "pharmastore-backend/internal/domains/product/handler"
	productRepo "pharmastore-backend/internal/domains/product/repository"
	productService "pharmastore-backend/internal/domains/product/service"
)

// Container holds the application dependency graph. Everything in it
// is a singleton wired once at startup.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	AsynqClient *asynq.Client

	// Cart persistence
	CartStorage cartStorage.PersistentStorage

	// Repositories
	ProductRepo productRepo.RepositoryInterface

	// Services
	ProductService productService.ServiceInterface
	CartService    cartService.ServiceInterface

	// Handlers
	ProductHandler *productHandler.Handler
	CartHandler    *cartHandler.Handler
}

// NewContainer builds the full dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: PostgreSQL
	db := database.NewPostgresDB(&database.DBConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
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
	log.Println("✅ Database connected")

	// Step 3: Redis (cache + cart persistence + task queue)
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// The cart cannot persist without Redis; fail fast
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	c.CartStorage = cartStorage.NewRedisStorage(redisCache.Client)
	log.Println("✅ Redis connected")

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 4: Repositories
	c.ProductRepo = productRepo.NewPostgresRepository(db.Pool)

	// Step 5: Services
	c.ProductService = productService.NewProductService(c.ProductRepo, cfg.Cart.StockCacheTTL)
	c.CartService = cartService.NewCartService(c.CartStorage, c.ProductService, c.AsynqClient)

	// Step 6: Handlers
	c.ProductHandler = productHandler.NewHandler(c.ProductService)
	c.CartHandler = cartHandler.NewHandler(c.CartService)

	log.Println("✅ DI Container ready")
	return c, nil
}

// Cleanup releases held connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
