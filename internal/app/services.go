package app

import (
	"context"
	"fmt"

	"github.com/yungbote/sahayak-backend/internal/askqueue"
	"github.com/yungbote/sahayak-backend/internal/cache"
	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/flows"
	"github.com/yungbote/sahayak-backend/internal/games"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/realtime"
)

type Services struct {
	Model  gemini.Client
	Cache  cache.Cache
	Flows  *flows.Service
	Arcade *games.Arcade
	Queue  *askqueue.Queue
	Hub    *realtime.Hub
}

func wireServices(ctx context.Context, log *logger.Logger, cfg *config.Config, metrics *observability.Metrics) (Services, []func() error, error) {
	log.Info("Wiring services...", "model_provider", cfg.Model.Provider)

	model, err := gemini.New(ctx, cfg.Model, log, metrics)
	if err != nil {
		return Services{}, nil, fmt.Errorf("init model client: %w", err)
	}

	var closers []func() error
	c, closeCache, err := cache.New(ctx, cfg.Cache, log)
	if err != nil {
		return Services{}, nil, fmt.Errorf("init cache: %w", err)
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	flowSvc, err := flows.NewService(flows.Deps{
		Model:       model,
		Placeholder: flows.NewPlaceholder(cfg.Flows),
		Cache:       c,
		CacheTTL:    cfg.Cache.TTL.Duration,
		Log:         log,
		Metrics:     metrics,
		Config:      cfg.Flows,
	})
	if err != nil {
		return Services{}, closers, err
	}

	hub := realtime.NewHub(log)
	return Services{
		Model: model,
		Cache: c,
		Flows: flowSvc,
		Arcade: games.NewArcade(games.Options{
			TTL:         cfg.Games.SessionTTL.Duration,
			MaxSessions: cfg.Games.MaxSessions,
			Log:         log,
			Metrics:     metrics,
			OnExpire:    func(id string) { hub.End(id) },
		}),
		Queue: askqueue.New(askqueue.Options{
			MaxQuestions: cfg.AskLater.MaxQuestions,
			Log:          log,
			Metrics:      metrics,
		}),
		Hub: hub,
	}, closers, nil
}
