// README: Entry point; loads config, wires services, starts the HTTP server and shuts it down on signal.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/ai"
	"tripplanner/internal/config"
	httptransport "tripplanner/internal/http"
	"tripplanner/internal/infra"
	"tripplanner/internal/maps"
	"tripplanner/internal/modules/aiusage"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.IsProduction(), cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("planner-api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	var store session.Store
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, cfg.Session.TTL, cfg.LockTTL())
		logger.Info("sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = session.NewMemoryStore()
		logger.Warn("PLANNER_REDIS_ADDR not set; sessions kept in memory")
	}
	sessions := session.NewService(store)

	var quota service.Quota
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		quota = aiusage.NewService(aiusage.NewStore(dbPool), cfg.Quota.Monthly)
	}

	backend, err := ai.NewBackend(cfg.AI.Provider, cfg.AI.BaseURL)
	if err != nil {
		return err
	}
	opts := []service.Option{
		service.WithModel(cfg.AI.Model),
		service.WithMaxTokens(cfg.AI.MaxTokens),
		service.WithTimeout(cfg.AI.Timeout),
		service.WithLogger(logger),
	}
	if cfg.Maps.APIKey != "" {
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithRouteEstimator(routes), service.WithPlaceFinder(places))
	}
	resolver := ai.NewResolver(cfg.AI.CredentialEnv)
	planner := service.NewTripPlanner(resolver, backend, opts...)
	if !resolver.Available("") {
		logger.Warn("no default API key; sessions without their own key run in offline mode",
			zap.String("env", cfg.AI.CredentialEnv))
	}

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Runner:             service.NewRunner(planner, sessions, quota, logger),
		Sessions:           sessions,
		Verifier:           verifier,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
		RateLimitBurst:     cfg.RateLimit.Burst,
		OperationTimeout:   cfg.OperationTimeout(),
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("planner-api listening",
			zap.String("addr", cfg.HTTP.Addr), zap.String("provider", backend.Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
