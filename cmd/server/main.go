package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mortyverse/Geurim-Lab/common/id"
	"github.com/mortyverse/Geurim-Lab/common/logger"
	"github.com/mortyverse/Geurim-Lab/common/otel"
	"github.com/mortyverse/Geurim-Lab/core/config"
	"github.com/mortyverse/Geurim-Lab/core/db"
	"github.com/mortyverse/Geurim-Lab/internal/blob"
	"github.com/mortyverse/Geurim-Lab/internal/http/middleware"
	httprouter "github.com/mortyverse/Geurim-Lab/internal/http/router"
	"github.com/mortyverse/Geurim-Lab/internal/service"
	"github.com/mortyverse/Geurim-Lab/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses the OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "geurim-lab starting", "env", cfg.Env)

	if err := id.Init(cfg.SnowflakeNode); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(cfg.DB.DSN); err != nil {
		slog.ErrorContext(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// The mentor roster cache is an optimization; the store falls back to
		// Postgres when redis is away.
		slog.WarnContext(ctx, "redis unreachable, mentor cache disabled", "error", err)
		redisClient = nil
	} else {
		slog.InfoContext(ctx, "redis connected")
	}

	var storage blob.Storage
	if cfg.Blob.AccessKeyID == "" {
		// No object-store credentials; uploads live in process memory and
		// vanish on restart. Good enough for local development.
		slog.WarnContext(ctx, "blob credentials missing, using in-memory storage")
		storage = blob.NewMemory()
	} else {
		storage, err = blob.NewS3(ctx, blob.S3Config{
			Endpoint:        cfg.Blob.Endpoint,
			Region:          cfg.Blob.Region,
			AccessKeyID:     cfg.Blob.AccessKeyID,
			SecretAccessKey: cfg.Blob.SecretAccessKey,
			Bucket:          cfg.Blob.Bucket,
			PublicBaseURL:   cfg.Blob.PublicBaseURL,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to initialize blob storage", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "blob storage ready", "bucket", cfg.Blob.Bucket)
	}

	stores := store.NewStores(database.Pool(), redisClient, cfg.Redis.MentorCacheTTL)
	services := service.NewServices(stores, storage)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span, Recovery catches panics, Logger logs
	// with trace context.
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services)

	return router
}
