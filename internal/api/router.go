package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/respvision_go_server/config"
	"github.com/qs3c/respvision_go_server/internal/api/handler"
	"github.com/qs3c/respvision_go_server/internal/api/middleware"
)

type Router struct {
	analysisHandler  *handler.AnalysisHandler
	websocketHandler *handler.WebSocketHandler
	cfg              *config.Config
}

func NewRouter(
	analysisHandler *handler.AnalysisHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		analysisHandler:  analysisHandler,
		websocketHandler: websocketHandler,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api")
	{
		api.POST("/analyze", r.analysisHandler.Analyze)
		api.GET("/analysis/:id", r.analysisHandler.Get)
		api.GET("/screenshots/:id", r.analysisHandler.Screenshots)
		api.GET("/history", r.analysisHandler.History)
		api.GET("/health", r.analysisHandler.Health)
	}

	// 进度推送
	engine.GET("/ws", r.websocketHandler.Handle)

	// 静态产物
	engine.Static("/screenshots", r.cfg.Storage.ScreenshotsDir)
	engine.Static("/reports", r.cfg.Storage.ReportsDir)

	return engine
}
