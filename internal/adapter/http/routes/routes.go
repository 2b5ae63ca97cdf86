package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	_ "project_billing/docs"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter mounts the /v1 API, swagger and, when m is set, the metrics
// endpoint.
func NewRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setMiddlewares(router, log, m)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if m != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, h)
	return router
}

func setMiddlewares(router *gin.Engine, log *zap.Logger, m *metrics.Metrics) {
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))
	if m != nil {
		router.Use(m.Middleware())
	}
}

// Run starts the server and blocks until SIGINT or SIGTERM, then drains
// in-flight requests for up to HTTP.ShutdownTimeout.
func Run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := OpenRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepos()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	router := NewRouter(cfg, log, m, BuildHandlers(repos, log, m))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
