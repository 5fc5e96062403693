package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomodule/redigo/redis"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reelview-admin/internal/config"
	"reelview-admin/internal/i18n"
	"reelview-admin/internal/repository"
	"reelview-admin/internal/router"
	"reelview-admin/internal/routing"
	"reelview-admin/internal/service"
	"reelview-admin/locales"
	"reelview-admin/pkg/logging"
)

func configDir() string {
	if dir := os.Getenv("REELVIEW_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "."
}

func bundleFS(cfg config.I18nConfig) fs.FS {
	if cfg.BundleDir != "" {
		return os.DirFS(cfg.BundleDir)
	}
	return locales.FS
}

// buildSource 按配置返回未加缓存的语言包加载器
func buildSource(cfg config.I18nConfig, registry *i18n.Registry, db *gorm.DB) i18n.Loader {
	if cfg.Source == "database" {
		return i18n.NewDBLoader(repository.NewTranslationRepository(db))
	}

	var loader i18n.Loader = i18n.NewFileLoader(bundleFS(cfg), registry)
	if cfg.Overrides {
		loader = i18n.NewOverlayLoader(loader, repository.NewTranslationRepository(db))
	}
	return loader
}

func startServer(addr string, handler http.Handler, pool *redis.Pool, scheduler *cron.Cron) {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	<-scheduler.Stop().Done()

	if pool != nil {
		if err := pool.Close(); err != nil {
			logging.Logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}

	logging.Logger.Info("Server exiting")
}

func main() {
	cfg, err := config.Load(configDir())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.Init(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logging.AtomicLevel.Level() > zap.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	registry, err := i18n.NewRegistry(cfg.I18n.Locales, cfg.I18n.DefaultLocale)
	if err != nil {
		logger.Fatal("Refusing to serve with a broken locale registry", zap.Error(err))
	}

	policy, err := routing.NewPolicy(registry, routing.Options{
		Mode:                 routing.Mode(cfg.I18n.PrefixMode),
		ExcludePattern:       cfg.I18n.ExcludePattern,
		UnknownPrefix:        routing.UnknownPrefix(cfg.I18n.UnknownPrefix),
		LocaleSegmentPattern: cfg.I18n.LocaleSegmentPattern,
	})
	if err != nil {
		logger.Fatal("Invalid locale routing configuration", zap.Error(err))
	}

	var db *gorm.DB
	if cfg.DB.Enabled {
		if db, err = repository.InitDB(cfg.DB, logger, logging.AtomicLevel); err != nil {
			logger.Fatal("Failed to init database", zap.Error(err))
		}
	}

	var pool *redis.Pool
	if cfg.Redis.Enabled {
		pool = repository.NewRedisPool(cfg.Redis, logger)
	}

	source := buildSource(cfg.I18n, registry, db)
	loader := source

	var cache *i18n.CachingLoader
	if cfg.I18n.Cache.Enabled {
		cache = i18n.NewCachingLoader(pool, source, cfg.I18n.Cache.TTL, logger.Named("bundle-cache"))
		loader = cache
	}

	var resolverOpts []i18n.ResolverOption
	var stats *service.StatsService
	if pool != nil && db != nil {
		stats = service.NewStatsService(pool, repository.NewStatsRepository(db), logger.Named("stats"))
		resolverOpts = append(resolverOpts, i18n.WithStatsRecorder(stats))
	}

	resolver := i18n.NewResolver(registry, loader, logger.Named("i18n"), resolverOpts...)
	health := service.NewBundleHealthService(registry, source, logger.Named("bundle-health"))
	health.RunScheduled()

	var translations *service.TranslationService
	if db != nil {
		var invalidator service.CacheInvalidator
		if cache != nil {
			invalidator = cache
		}
		translations = service.NewTranslationService(registry, repository.NewTranslationRepository(db), invalidator, logger.Named("translations"))
	}

	scheduler := cron.New()
	if cfg.I18n.HealthCheckCron != "" {
		if _, err := scheduler.AddFunc(cfg.I18n.HealthCheckCron, health.RunScheduled); err != nil {
			logger.Fatal("Failed to schedule bundle health check", zap.Error(err))
		}
	}
	if stats != nil && cfg.Stats.FlushCron != "" {
		if _, err := scheduler.AddFunc(cfg.Stats.FlushCron, stats.FlushToday); err != nil {
			logger.Fatal("Failed to schedule stats flush", zap.Error(err))
		}
	}
	scheduler.Start()

	engine := router.New(router.Deps{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Registry:       registry,
		Policy:         policy,
		Hints:          routing.NewHintMatcher(registry, cfg.I18n.CookieName),
		Resolver:       resolver,
		Health:         health,
		Translations:   translations,
		Stats:          stats,
	})

	startServer(cfg.Server.Addr, engine, pool, scheduler)
}
