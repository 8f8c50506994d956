package app

import (
	"github.com/yungbote/sahayak-backend/internal/config"
	httpH "github.com/yungbote/sahayak-backend/internal/http/handlers"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Flows    *httpH.FlowHandler
	AskLater *httpH.AskLaterHandler
	Games    *httpH.GameHandler
}

func wireHandlers(log *logger.Logger, cfg *config.Config, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(metrics),
		Flows:    httpH.NewFlowHandler(services.Flows),
		AskLater: httpH.NewAskLaterHandler(services.Queue, services.Flows),
		Games:    httpH.NewGameHandler(services.Arcade, services.Hub, cfg.HTTP.AllowedOrigins),
	}
}
