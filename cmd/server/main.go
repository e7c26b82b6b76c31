package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	catalogapp "github.com/blueselfcheckout/backend/internal/application/catalog"
	salesapp "github.com/blueselfcheckout/backend/internal/application/sales"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/cache"
	"github.com/blueselfcheckout/backend/internal/infrastructure/config"
	"github.com/blueselfcheckout/backend/internal/infrastructure/logger"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence"
	"github.com/blueselfcheckout/backend/internal/infrastructure/telemetry"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/handler"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/middleware"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting self-checkout backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Telemetry comes first so the database and HTTP layers see the global providers
	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := telemetry.NewDBTracing(cfg.Telemetry, db.Driver(), log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if tel.MetricsEnabled() {
		if err := telemetry.RegisterPoolMetrics(tel.Meter("db.pool"), db.DB); err != nil {
			log.Warn("Database pool metrics disabled", zap.Error(err))
		}
	}

	// Postgres schemas are owned by cmd/migrate; sqlite is migrated in place
	if db.Driver() == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Product read cache
	productCache, closeCache, err := cache.NewProductCacheFactory(
		cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).Create()
	if err != nil {
		log.Fatal("Failed to initialize product cache", zap.Error(err))
	}
	defer closeCache()

	// Reconciliation observer
	reconcileMetrics, err := telemetry.NewReconcileMetrics(tel.Meter("reconcile"))
	if err != nil {
		log.Fatal("Failed to create reconcile metrics", zap.Error(err))
	}
	reconcileOpts := []reconcile.Option{reconcile.WithObserver(reconcileMetrics)}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	treeRepo := persistence.NewGormProductTreeRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)

	// Application services
	orderService := salesapp.NewOrderService(orderRepo, reconcileOpts...)
	productService := catalogapp.NewProductService(productRepo, productCache, reconcileOpts...)
	treeService := catalogapp.NewProductTreeService(treeRepo, reconcileOpts...)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, reconcileOpts...)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - One span per request, marked failed on 4xx/5xx
	// 4. Metrics - Request count and latency
	// 5. Logger - Log requests
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.AllowOrigins

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tel.TracingEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(tel, log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))

	systemHandler := handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, db)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		Orders:       handler.NewOrderHandler(orderService),
		Products:     handler.NewProductHandler(productService),
		ProductTrees: handler.NewProductTreeHandler(treeService),
		Categories:   handler.NewCategoryHandler(categoryService),
		System:       systemHandler,
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
