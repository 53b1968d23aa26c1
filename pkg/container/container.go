package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"carousel-backend/internal/config"
	infracache "carousel-backend/internal/infrastructure/cache"
	"carousel-backend/internal/infrastructure/database"
	"carousel-backend/pkg/logger"

	carouselcache "carousel-backend/internal/domains/carousel/cache"
	carouselHandler "carousel-backend/internal/domains/carousel/handler"
	"carousel-backend/internal/domains/carousel/render"
	carouselRepo "carousel-backend/internal/domains/carousel/repository"
	carouselService "carousel-backend/internal/domains/carousel/service"

	settingsHandler "carousel-backend/internal/domains/settings/handler"
	settingsRepo "carousel-backend/internal/domains/settings/repository"
	settingsService "carousel-backend/internal/domains/settings/service"
)

// Container holds every application dependency. All fields are
// singletons built once at startup; the cache tiers in particular have
// an explicit lifecycle here instead of being ambient globals.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *infracache.RedisCache
	Hot    *infracache.MemoryCache

	CarouselRepo    carouselRepo.CarouselRepository
	CarouselCache   *carouselcache.CarouselCache
	Renderer        *render.Renderer
	CarouselService carouselService.ServiceInterface
	CarouselHandler *carouselHandler.CarouselHandler

	SettingsRepo    settingsRepo.SettingsRepository
	SettingsService settingsService.ServiceInterface
	SettingsHandler *settingsHandler.SettingsHandler
}

// NewContainer builds the dependency graph in order: config ->
// infrastructure -> repositories -> cache -> render -> services ->
// handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing container...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: database
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: cache tiers. A Redis outage degrades reads to the store,
	// so a failed ping only logs a warning instead of aborting startup.
	c.Redis = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, warm tier degraded", err)
	}
	c.Hot = infracache.NewMemoryCache()

	// Step 4: carousel domain
	c.CarouselRepo = carouselRepo.NewPostgresCarouselRepository(db.Pool)
	c.CarouselCache = carouselcache.NewCarouselCache(c.Hot, c.Redis, c.CarouselRepo, carouselcache.Options{
		HotTTL:           cfg.Cache.HotTTL,
		WarmTTL:          cfg.Cache.WarmTTL,
		CriticalSettings: cfg.Cache.CriticalSettings,
		Scanner:          carouselcache.NewEmbedTokenScanner(),
	})

	renderer, err := render.NewRenderer(c.CarouselCache)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}
	c.Renderer = renderer

	c.CarouselService = carouselService.NewCarouselService(c.CarouselRepo, c.CarouselCache, c.Renderer)
	c.CarouselHandler = carouselHandler.NewCarouselHandler(c.CarouselService)

	// Step 5: settings domain (critical-settings invalidation trigger)
	c.SettingsRepo = settingsRepo.NewPostgresSettingsRepository(db.Pool)
	c.SettingsService = settingsService.NewSettingsService(c.SettingsRepo, c.CarouselService)
	c.SettingsHandler = settingsHandler.NewSettingsHandler(c.SettingsService)

	log.Println("✅ Container ready")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
