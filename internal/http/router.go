package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/sahayak-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sahayak-backend/internal/http/middleware"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	Metrics         *observability.Metrics
	ServiceName     string
	Tracing         bool
	AllowedOrigins  []string
	MaxRequestBytes int64

	HealthHandler   *httpH.HealthHandler
	FlowHandler     *httpH.FlowHandler
	AskLaterHandler *httpH.AskLaterHandler
	GameHandler     *httpH.GameHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.BodyLimit(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/metrics", cfg.HealthHandler.Metrics)
	}

	api := r.Group("/api")
	{
		// Flows
		if cfg.FlowHandler != nil {
			f := api.Group("/flows")
			f.POST("/knowledge-assistant", cfg.FlowHandler.KnowledgeAssistant)
			f.POST("/speech", cfg.FlowHandler.Speech)
			f.POST("/hyperlocal-content", cfg.FlowHandler.HyperlocalContent)
			f.POST("/lesson-plan", cfg.FlowHandler.LessonPlan)
			f.POST("/worksheets", cfg.FlowHandler.Worksheets)
			f.POST("/visual-aid", cfg.FlowHandler.VisualAid)
			f.POST("/ask-later", cfg.FlowHandler.AskLater)
			f.POST("/role-play-script", cfg.FlowHandler.RolePlayScript)
			f.POST("/role-play-audio", cfg.FlowHandler.RolePlayAudio)
			f.GET("/image-search", cfg.FlowHandler.ImageSearch)
		}

		// Ask-later queue
		if cfg.AskLaterHandler != nil {
			api.GET("/ask-later/questions", cfg.AskLaterHandler.List)
			api.POST("/ask-later/questions", cfg.AskLaterHandler.Add)
			api.GET("/ask-later/questions/:id", cfg.AskLaterHandler.Get)
			api.DELETE("/ask-later/questions/:id", cfg.AskLaterHandler.Remove)
			api.POST("/ask-later/questions/:id/answer", cfg.AskLaterHandler.Answer)
		}

		// Games
		if cfg.GameHandler != nil {
			api.GET("/games", cfg.GameHandler.Catalog)
			api.POST("/games/sessions", cfg.GameHandler.CreateSession)
			api.GET("/games/sessions/:id", cfg.GameHandler.GetSession)
			api.DELETE("/games/sessions/:id", cfg.GameHandler.EndSession)
			api.POST("/games/sessions/:id/actions", cfg.GameHandler.Act)
		}
	}

	if cfg.GameHandler != nil {
		r.GET("/ws/games/sessions/:id", cfg.GameHandler.PlayWS)
	}

	return r
}
