package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cyberx/config"
	_ "cyberx/docs"
	"cyberx/logging"
	"cyberx/scanner"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Run initializes dependencies and serves the API until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Configure(cfg.LogLevel)
	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	store := NewRedisStore(redisClient, cfg.TaskTTL)
	s := scanner.New(
		scanner.WithRateLimit(cfg.ProbeRate),
		scanner.WithLogger(logger),
	)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	pool := StartWorkers(workerCtx, store, s, cfg.ScanWorkers, cfg.ScanDeadline)

	server := NewServer(store, s, cfg.MaxPorts, cfg.ScanDeadline)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, redisClient, server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting CyberX API server", "addr", cfg.Addr, "workers", cfg.ScanWorkers)
		errCh <- httpServer.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down CyberX API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("http shutdown: %w", err)
		}
	}

	stopWorkers()
	pool.Wait()
	return serveErr
}

// NewRouter assembles the Gin engine: global middleware, health and docs
// endpoints, and the authenticated, rate-limited /api group.
func NewRouter(cfg *config.Config, limiter redis.Cmdable, server *Server, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(logger),
		SecurityHeadersMiddleware(),
		CORSMiddleware(cfg.CORSOrigin),
	)

	router.GET("/healthz", server.healthHandler)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(
		AuthMiddleware(cfg.APIKey, logger),
		RateLimitMiddleware(limiter, cfg.RateLimit, cfg.RateLimitWindow, logger),
	)
	server.RegisterRoutes(api)

	return router
}
