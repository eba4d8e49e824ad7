package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/marketwatch/config"
	_ "github.com/epeers/marketwatch/docs"
	"github.com/epeers/marketwatch/internal/alphavantage"
	"github.com/epeers/marketwatch/internal/cache"
	"github.com/epeers/marketwatch/internal/database"
	"github.com/epeers/marketwatch/internal/handlers"
	"github.com/epeers/marketwatch/internal/middleware"
	"github.com/epeers/marketwatch/internal/monitoring"
	"github.com/epeers/marketwatch/internal/repository"
	"github.com/epeers/marketwatch/internal/scheduler"
	"github.com/epeers/marketwatch/internal/services"
	"github.com/epeers/marketwatch/internal/util"
	"github.com/epeers/marketwatch/internal/yahoo"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Market Watch API
// @version 1.0
// @description Normalized multi-asset price comparison and equal-weight portfolio simulation.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := util.ConfigureLogging(util.LogConfig{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON}); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	catalog, err := config.LoadCatalog(cfg.AssetsFile)
	if err != nil {
		log.Fatalf("Failed to load asset catalog: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// The Postgres price store is optional
	var store services.PriceStore
	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		store = repository.NewPriceRepository(db.Pool)
	} else {
		log.Info("PG_URL not set, prices are cached in memory only")
	}

	var fetcher services.Fetcher
	switch cfg.DataSource {
	case config.SourceAlphaVantage:
		fetcher = alphavantage.NewClient(cfg.AVKey)
	default:
		fetcher = yahoo.NewClient(cfg.Proxy)
	}

	metrics := monitoring.NewMetrics()
	memCache := cache.NewMemoryCache(cfg.CacheTTL)

	// Initialize services
	pricingSvc := services.NewPricingService(memCache, store, fetcher, services.PricingOptions{
		Concurrency: cfg.FetchConcurrency,
		Recorder:    metrics,
	})
	dashboardSvc := services.NewDashboardService(pricingSvc, catalog, services.DashboardOptions{
		DefaultPeriod: cfg.DefaultPeriod,
		BaseValue:     cfg.BaseValue,
		RiskFreeRate:  cfg.RiskFreeRate,
	}, metrics)

	router := newRouter(dashboardSvc, pricingSvc, metrics)

	var warmer *scheduler.Warmer
	if cfg.WarmCron != "" {
		warmer = scheduler.NewWarmer(dashboardSvc, memCache)
		if err := warmer.Register(cfg.WarmCron); err != nil {
			log.Fatalf("Failed to schedule cache warming: %v", err)
		}
		warmer.Start()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s (source=%s)", cfg.Port, fetcher.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	if warmer != nil {
		warmer.Stop()
	}

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func newRouter(dashboardSvc *services.DashboardService, pricingSvc *services.PricingService, metrics *monitoring.Metrics) *gin.Engine {
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)
	chartHandler := handlers.NewChartHandler(dashboardSvc)
	adminHandler := handlers.NewAdminHandler(pricingSvc)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), metrics.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/assets", dashboardHandler.Assets)
	router.POST("/dashboard", dashboardHandler.Refresh)

	router.GET("/charts/asset/:symbol", chartHandler.AssetChart)
	router.GET("/charts/portfolio", chartHandler.PortfolioChart)

	router.POST("/cache/clear", adminHandler.ClearCache)
	router.GET("/admin/get_daily_prices", adminHandler.GetDailyPrices)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
