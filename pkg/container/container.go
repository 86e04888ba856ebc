package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"mineral-catalog/internal/config"
	authHandler "mineral-catalog/internal/domains/auth/handler"
	authService "mineral-catalog/internal/domains/auth/service"
	"mineral-catalog/internal/domains/mineral/delimited"
	mineralHandler "mineral-catalog/internal/domains/mineral/handler"
	mineralModel "mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/internal/domains/mineral/repository"
	mineralService "mineral-catalog/internal/domains/mineral/service"
	infraCache "mineral-catalog/internal/infrastructure/cache"
	"mineral-catalog/internal/infrastructure/database"
	"mineral-catalog/internal/infrastructure/storage"
	"mineral-catalog/pkg/cache"
	"mineral-catalog/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application. It is built once at
// startup, in layer order: config, infrastructure, repositories, services,
// handlers.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB // nil in memory-only mode
	Cache  cache.Cache          // nil unless sessions live in Redis

	// Repositories
	MineralRepo repository.Repository // nil in memory-only mode

	// Services
	Collection  mineralService.CollectionService
	Exporter    mineralService.ExportService
	AuthService authService.AuthService

	// Handlers
	MineralHandler *mineralHandler.MineralHandler
	AuthHandler    *authHandler.AuthHandler
}

// ========================================
// CONSTRUCTORS
// ========================================

// NewContainer builds the full graph used by the HTTP server.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	c, err := NewCatalogContainer(cfg)
	if err != nil {
		return nil, err
	}

	if err := c.initAuth(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	c.initHandlers()
	c.initMetrics()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// NewCatalogContainer builds the catalog layers only: storage, the
// collection and the exporter. The console uses it directly.
func NewCatalogContainer(cfg *config.Config) (*Container, error) {
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	c := &Container{Config: cfg}
	log.Info().Str("env", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 1: DATABASE (optional)
	// ========================================
	if cfg.Database.Enabled {
		if err := c.initDatabase(); err != nil {
			// Memory-only mode: the catalog still works, storage endpoints
			// answer 503.
			logger.Warn("Database unavailable, running in memory-only mode", map[string]interface{}{
				"error": err.Error(),
			})
		}
	} else {
		logger.Info("Database disabled, running in memory-only mode", nil)
	}

	// ========================================
	// STEP 2: SERVICES
	// ========================================
	c.Collection = mineralService.NewCollectionService()
	c.Exporter = mineralService.NewExportService()

	// ========================================
	// STEP 3: INITIAL LOAD
	// ========================================
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loaded, source, err := LoadInitial(ctx, c.MineralRepo, cfg.Catalog.SeedFile)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	c.Collection.AddAll(loaded)

	logger.Info("Catalog loaded", map[string]interface{}{
		"source":   source,
		"minerals": c.Collection.Size(),
	})

	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return err
	}
	if err := db.HealthCheck(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	repo := repository.NewPostgresRepository(db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	c.DB = db
	c.MineralRepo = repo
	return nil
}

// initAuth picks the session store and seeds the two configured accounts.
func (c *Container) initAuth() error {
	auth := c.Config.Auth

	var sessions authService.SessionStore
	if auth.SessionStore == "redis" {
		rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB, c.Config.Redis.Prefix)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rc.Connect(ctx); err != nil {
			// Redis failure is not critical; sessions fall back to memory
			logger.Warn("Redis unavailable, keeping sessions in memory", map[string]interface{}{
				"error": err.Error(),
			})
			_ = rc.Close()
		} else {
			c.Cache = rc
			sessions = authService.NewCacheSessionStore(rc, auth.SessionTTL)
		}
	}
	if sessions == nil {
		sessions = authService.NewMemorySessionStore(auth.SessionTTL)
	}

	svc, err := authService.NewAuthService(auth.AdminUsername, []authService.Account{
		{Username: auth.AdminUsername, Password: auth.AdminPassword},
		{Username: auth.UserUsername, Password: auth.UserPassword},
	}, sessions, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	c.AuthService = svc
	return nil
}

func (c *Container) initHandlers() {
	c.MineralHandler = mineralHandler.NewMineralHandler(c.Collection, c.Exporter, c.MineralRepo, mineralHandler.Options{
		PersistOnChange: c.Config.Catalog.PersistOnChange,
		MaxUploadBytes:  c.Config.Catalog.MaxUploadBytes,
		Images:          storage.NewImageStore(c.Config.Catalog.ImagesDir),
	})

	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService, authHandler.CookieConfig{
		Name:   c.Config.Auth.CookieName,
		TTL:    c.Config.Auth.SessionTTL,
		Secure: c.Config.Auth.CookieSecure,
	})
}

func (c *Container) initMetrics() {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "minerals_collection_size",
		Help: "Number of minerals in the in-memory collection.",
	}, func() float64 {
		return float64(c.Collection.Size())
	})
}

// ========================================
// STARTUP LOAD
// ========================================

// LoadInitial returns the minerals the collection starts with: the stored
// state when the database holds any, otherwise the seed file when one is
// configured. source names where they came from. A storage read failure is
// logged and the seed file is used without being written back.
func LoadInitial(ctx context.Context, repo repository.Repository, seedFile string) ([]mineralModel.Mineral, string, error) {
	if repo != nil {
		loaded, ok, err := loadStored(ctx, repo)
		if err != nil {
			logger.Warn("Cannot read storage, starting without it", map[string]interface{}{
				"error": err.Error(),
			})
			repo = nil
		} else if ok {
			return loaded, "database", nil
		}
	}

	if seedFile == "" {
		return nil, "empty", nil
	}

	result, err := delimited.ReadFile(seedFile)
	if err != nil {
		return nil, "", err
	}
	if result.Skipped > 0 {
		logger.Warn("Seed file has skipped rows", map[string]interface{}{
			"file":    seedFile,
			"skipped": result.Skipped,
		})
	}

	if repo != nil && len(result.Minerals) > 0 {
		if err := repo.SaveAll(ctx, result.Minerals); err != nil {
			logger.Error("Failed to store seed file", err)
		}
	}

	return result.Minerals, "seed file", nil
}

// loadStored reports ok=false when storage holds nothing.
func loadStored(ctx context.Context, repo repository.Repository) ([]mineralModel.Mineral, bool, error) {
	empty, err := repo.IsEmpty(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("check storage: %w", err)
	}
	if empty {
		return nil, false, nil
	}

	loaded, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load storage: %w", err)
	}
	return loaded, true, nil
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases the database pool and the Redis client. Safe to call
// more than once.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
		c.Cache = nil
	}

	log.Info().Msg("Container cleanup completed")
}
