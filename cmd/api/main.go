package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.cloudfoundry.org/lager"

	"github.com/bryanwahyu/passwise/internal/bootstrap"
	"github.com/bryanwahyu/passwise/internal/config"
	"github.com/bryanwahyu/passwise/internal/infra/httpserver"
	"github.com/bryanwahyu/passwise/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger := bootstrap.NewLogger("passwise", cfg.Log.Level)

	ctx := context.Background()
	app, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("bootstrap-failed", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close-failed", err)
		}
	}()

	handler := httpserver.NewRouter(app.Service, httpserver.Options{
		Logger:            logger,
		Metrics:           middleware.NewMetrics(),
		Checkers:          app.Checkers,
		APIKeys:           apiKeys(cfg),
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
	})
	defer handler.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", lager.Data{
			"addr":            addr,
			"generator-mode":  cfg.Generator.Mode,
			"breach-backend":  cfg.Breach.Backend,
			"database-driver": cfg.Database.Driver,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server-failed", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting-down")

	ctx2, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown-failed", err)
	}
}

func apiKeys(cfg *config.Config) map[string]string {
	if !cfg.Auth.Enabled {
		return nil
	}
	return cfg.Auth.APIKeys
}
