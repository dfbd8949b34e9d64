package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tailortalk/internal/middleware"
	"tailortalk/internal/model"
	"tailortalk/pkg/response"
)

// mapHandlers installs the global middleware chain, then system routes, then
// the rate-limited API and webhook routes.
func (srv HTTPServer) mapHandlers() {
	ctx := context.Background()
	mw := middleware.New(srv.l, srv.cors, srv.rateLimit, srv.metrics)

	srv.gin.Use(mw.Recovery(), mw.RequestID(), mw.Logger(), mw.CORS())
	if model.Environment(srv.environment) == model.EnvironmentProduction {
		srv.l.Infof(ctx, "CORS restricted to %v", srv.cors.AllowOrigins)
	} else {
		srv.l.Infof(ctx, "CORS mode: %s", srv.environment)
	}

	srv.mapSystemRoutes()

	limited := mw.RateLimit()
	api := srv.gin.Group("/api/v1", limited)
	srv.setupSchedulingDomain(ctx, api)
	srv.setupChatDomain(ctx, api)

	if srv.telegramHandler == nil {
		srv.l.Infof(ctx, "Telegram not configured, /webhook/telegram disabled")
		return
	}
	srv.gin.POST("/webhook/telegram", limited, srv.telegramHandler.HandleWebhook)
	srv.l.Infof(ctx, "Telegram webhook registered at POST /webhook/telegram")
}

func (srv HTTPServer) mapSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metrics != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))
	}

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	srv.gin.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
}
