package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"web-calculator/config"
	"web-calculator/grpcserver"
	httpLayer "web-calculator/http"
	"web-calculator/render"
	"web-calculator/repository"
	"web-calculator/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger = logger.Level(cfg.LogLevel)

	// Cache: Redis si está configurado, si no memoria
	cache := newCache(cfg)

	calculatorService := service.NewCalculatorService(
		cache,
		render.NewPlotRenderer(),
		cfg.EvalTimeout,
		logger.With().Str("component", "service").Logger(),
	)
	calculateHandler := httpLayer.NewCalculateHandler(
		calculatorService,
		logger.With().Str("component", "http").Logger(),
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpLayer.NewRouter(calculateHandler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 2)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("calculator listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var health *grpcserver.Server
	if cfg.GRPCAddr != "" {
		// Abrir el listener antes de servir para que Stop no compita con Listen
		health = grpcserver.New(cfg.GRPCAddr)
		if err := health.Listen(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("error binding gRPC health listener")
		}
		go func() {
			logger.Info().Str("addr", health.Addr()).Msg("gRPC health listening")
			if err := health.Serve(); err != nil {
				serverErr <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error().Err(err).Msg("error starting server")
	case <-quit:
		logger.Info().Msg("shutting down server")
	}

	if health != nil {
		health.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}
	if c, ok := cache.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing cache")
		}
	}

	logger.Info().Msg("server exited")
}

// newCache uses Redis when configured and reachable, otherwise memory.
func newCache(cfg *config.Config) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(cfg.CacheTTL)
	}

	rc := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
		_ = rc.Close()
		return repository.NewMemoryCache(cfg.CacheTTL)
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	return rc
}
