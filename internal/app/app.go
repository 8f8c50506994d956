package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"

	"github.com/yungbote/sahayak-backend/internal/config"
	apihttp "github.com/yungbote/sahayak-backend/internal/http"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      *config.Config
	Metrics  *observability.Metrics
	Services Services
	Router   *gin.Engine

	server       *apihttp.Server
	otelShutdown func(context.Context) error
	closers      []func() error
}

// buildServices is swapped in tests to simulate partial wiring failures.
var buildServices = wireServices

// New wires every component from cfg. Close must be called to release the cache connection
// and flush traces and logs.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Observability.OtelEnabled,
		ServiceName: cfg.Observability.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Observability.Version,
		Endpoint:    cfg.Observability.OtelEndpoint,
		Insecure:    cfg.Observability.OtelInsecure,
		SampleRatio: cfg.Observability.OtelSampleRate,
	})
	metrics := observability.NewMetrics(cfg.Observability.MetricsEnabled)

	a := &App{Log: log, Cfg: cfg, Metrics: metrics, otelShutdown: otelShutdown}

	services, closers, err := buildServices(ctx, log, cfg, metrics)
	// Closers opened before a wiring failure still need releasing.
	a.closers = closers
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Services = services

	handlerset := wireHandlers(log, cfg, services, metrics)
	a.Router = wireRouter(log, cfg, metrics, handlerset)
	a.server = apihttp.NewServer(cfg.HTTP, a.Router)
	return a, nil
}

// Run serves HTTP and sweeps idle game sessions until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	go a.Services.Arcade.Run(ctx)
	a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTP.Addr, "model_provider", a.Cfg.Model.Provider)
	return a.server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	var errs error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	a.closers = nil
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.HTTP.ShutdownTimeout.Duration)
		if err := a.otelShutdown(ctx); err != nil {
			errs = multierror.Append(errs, err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if errs != nil {
		a.Log.Warn("shutdown incomplete", "error", errs)
	}
	a.Log.Sync()
}
