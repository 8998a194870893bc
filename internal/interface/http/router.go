package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/trafficai/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Index)
	router.GET("/ws", handler.Socket)

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.GET("/dashboard", handler.Dashboard)
		api.POST("/theme/toggle", handler.ToggleTheme)
		api.POST("/traffic/refresh", handler.RefreshTraffic)
		api.GET("/map", handler.Map)
		api.GET("/map.png", handler.MapImage)
		api.POST("/vehicle/connect", handler.ConnectVehicle)
		api.POST("/routes/optimize", handler.OptimizeRoute)
		api.POST("/voice/start", handler.StartVoice)
		api.POST("/voice/result", handler.VoiceResult)
		api.POST("/alerts", handler.SetAlert)
		api.POST("/navigation/scroll", handler.Scroll)
		api.POST("/login", handler.Login)
		api.GET("/notifications", handler.Notifications)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
