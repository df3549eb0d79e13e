package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripplanner/internal/ai"
	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/maps"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/service"
)

// app is one CLI invocation: a planner and a throwaway in-memory session.
type app struct {
	runner    *service.Runner
	sessionID string
	logger    *zap.Logger
}

func newApp(ctx context.Context, g *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if g.verbose {
		if logger, err = infra.NewLogger(false, "debug"); err != nil {
			return nil, err
		}
	}

	backend, err := ai.NewBackend(cfg.AI.Provider, cfg.AI.BaseURL)
	if err != nil {
		return nil, err
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
			return nil, err
		}
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithRouteEstimator(routes), service.WithPlaceFinder(places))
	}
	planner := service.NewTripPlanner(ai.NewResolver(cfg.AI.CredentialEnv), backend, opts...)

	sessions := session.NewService(session.NewMemoryStore())
	st, err := sessions.Create(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if g.apiKey != "" {
		if _, err := sessions.SetCredential(ctx, st.ID, "", g.apiKey); err != nil {
			return nil, fmt.Errorf("set credential: %w", err)
		}
	}

	return &app{
		runner:    service.NewRunner(planner, sessions, nil, logger),
		sessionID: st.ID,
		logger:    logger,
	}, nil
}
