package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/sahayak-backend/internal/config"
	apihttp "github.com/yungbote/sahayak-backend/internal/http"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics, handlers Handlers) *gin.Engine {
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	return apihttp.NewRouter(apihttp.RouterConfig{
		Log:             log.With("component", "http"),
		Metrics:         metrics,
		ServiceName:     cfg.Observability.ServiceName,
		Tracing:         cfg.Observability.OtelEnabled,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
		HealthHandler:   handlers.Health,
		FlowHandler:     handlers.Flows,
		AskLaterHandler: handlers.AskLater,
		GameHandler:     handlers.Games,
	})
}
