package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsignme/internal/apiclient"
	"dsignme/internal/authgate"
	"dsignme/internal/config"
	"dsignme/internal/dashboard"
	"dsignme/internal/logging"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New("admin", cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithLogger(logger.WithField("component", "apiclient")),
		apiclient.WithUploadTimeout(cfg.UploadTimeout),
	)

	var cache authgate.Cache = authgate.NewMemoryCache()
	if cfg.RedisURL != "" {
		rdb, err := authgate.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, caching verify results in memory")
		} else {
			defer rdb.Close()
			cache = authgate.NewRedisCache(rdb, logger)
			logger.Info("caching verify results in redis")
		}
	}

	store := dashboard.NewStore(client, cfg.PageSize, cfg.SessionIdleTimeout)
	gate := authgate.New(client, authgate.Options{
		Cache:     cache,
		TTL:       cfg.VerifyCacheTTL,
		Secure:    cfg.CookieSecure,
		Logger:    logger,
		OnInvalid: store.Drop,
	})
	go store.Run(ctx, time.Minute)

	srv, err := dashboard.New(cfg.AdminAddr, logger, client, gate, store)
	if err != nil {
		logger.WithError(err).Fatal("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
}
