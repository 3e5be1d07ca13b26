package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"videocatalog/internal/config"
	cronrunner "videocatalog/internal/cron"
	"videocatalog/internal/db"
	"videocatalog/internal/handler"
	"videocatalog/internal/logger"
	gormrepository "videocatalog/internal/repository/gorm"
	"videocatalog/internal/service"

	_ "videocatalog/docs"
)

func main() {
	cfgPath := os.Getenv("VC_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("VC_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
	}
	// The server starts without a reachable database; requests report 503
	// until it comes back.
	if err := db.Ping(dbConn); err != nil {
		logger.Warn("db not reachable", zap.String("driver", dbConn.Driver), zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	queryService := &service.CatalogQueryService{
		Repo:   store,
		Config: cfg.Catalog,
		Logger: logger,
	}
	detailService := &service.CardDetailService{
		Repo:   store,
		Config: cfg.Catalog,
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	if dir := strings.TrimSpace(cfg.Server.StaticDir); dir != "" {
		engine.Static("/images", dir)
	}

	healthHandler := &handler.HealthHandler{
		Store:        store,
		MaxVisibleID: cfg.Catalog.MaxVisibleID,
		Location:     loadLocation(cfg.DB.Timezone, logger),
	}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	cardHandler := &handler.CardHandler{
		Query:  queryService,
		Detail: detailService,
		Logger: logger,
	}
	cardHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	queryService.LogStats(startupCtx)
	cancel()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add("catalog_stats", cfg.Cron.CatalogStats, func(ctx context.Context) {
			queryService.LogStats(ctx)
		})
		if err != nil {
			logger.Warn("cron register catalog stats failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting",
			zap.String("addr", cfg.Server.HTTPAddr),
			zap.Int64("max_visible_id", cfg.Catalog.MaxVisibleID),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func loadLocation(name string, logger *zap.Logger) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown timezone, using UTC", zap.String("timezone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}
