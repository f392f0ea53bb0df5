package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"Gin_memory_redis_rental_catalog/db"
	"Gin_memory_redis_rental_catalog/locks"
	"Gin_memory_redis_rental_catalog/models"
	"Gin_memory_redis_rental_catalog/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

const (
	CatalogMemory   = "memory"
	CatalogPostgres = "postgres"
	LockLocal       = "local"
	LockRedis       = "redis"
)

// App 聚合各依赖；DB / RDB 仅在对应驱动启用时非 nil
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config
	Items  *services.ItemsService
}

// Config 从环境变量读取
type Config struct {
	Port          string
	WebOrigin     string
	CatalogDriver string
	Postgres      db.PostgresConfig
	LockDriver    string
	RedisAddr     string
	RedisPwd      string
	LockTTL       time.Duration
	SeedItems     bool
}

// DemoItems is what a fresh in-memory catalog starts with when seeding is on.
func DemoItems() []models.Item {
	return []models.Item{{
		ID:           "firstItem",
		Name:         "Test Item",
		Description:  "this is a test item",
		Price:        55.0,
		Availability: true,
	}}
}

func MustNew() *App {
	cfg := loadConfig()
	a := &App{Config: cfg}

	// --- Catalog ---
	var catalog db.Catalog
	switch cfg.CatalogDriver {
	case CatalogPostgres:
		a.DB = db.ConnectDB(cfg.Postgres)
		catalog = db.NewRepo(a.DB)
	case CatalogMemory:
		var seed []models.Item
		if cfg.SeedItems {
			seed = DemoItems()
		}
		catalog = db.NewMemoryCatalog(seed...)
	default:
		log.Fatalf("unknown CATALOG_DRIVER %q", cfg.CatalogDriver)
	}

	// --- Item locks ---
	var locker services.Locker
	switch cfg.LockDriver {
	case LockRedis:
		a.RDB = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.RDB.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
		locker = locks.NewRedisLocker(a.RDB, cfg.LockTTL)
	case LockLocal:
		locker = locks.NewKeyedMutex()
	default:
		log.Fatalf("unknown LOCK_DRIVER %q", cfg.LockDriver)
	}
	log.Printf("catalog=%s locks=%s", cfg.CatalogDriver, cfg.LockDriver)

	a.Items = services.NewItemsService(catalog, locker)

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a.Router = r
	return a
}

func (a *App) Close() {
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			return def
		}
		return v
	}
	ttl := 10 * time.Second
	if n, err := strconv.Atoi(get("LOCK_TTL_SECONDS", "10")); err == nil && n > 0 {
		ttl = time.Duration(n) * time.Second
	}
	seed, err := strconv.ParseBool(get("SEED_ITEMS", "true"))
	if err != nil {
		seed = true
	}
	return Config{
		Port:          get("PORT", "3000"),
		WebOrigin:     get("WEB_ORIGIN", "http://localhost:5173"),
		CatalogDriver: strings.ToLower(get("CATALOG_DRIVER", CatalogMemory)),
		Postgres: db.PostgresConfig{
			Host:     get("DB_HOST", "127.0.0.1"),
			User:     get("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     get("DB_NAME", "rentals"),
			Port:     get("DB_PORT", "5432"),
		},
		LockDriver: strings.ToLower(get("LOCK_DRIVER", LockLocal)),
		RedisAddr:  get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:   os.Getenv("REDIS_PASSWORD"),
		LockTTL:    ttl,
		SeedItems:  seed,
	}
}
