package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	chatHTTP "tailortalk/internal/chat/delivery/http"
	schedulingHTTP "tailortalk/internal/scheduling/delivery/http"
)

// setupSchedulingDomain registers /api/v1/scheduling/*.
func (srv HTTPServer) setupSchedulingDomain(ctx context.Context, api *gin.RouterGroup) {
	h := schedulingHTTP.New(srv.l, srv.schedulingUC)
	schedulingHTTP.RegisterRoutes(api, h)
	srv.l.Infof(ctx, "Scheduling domain registered")
}

// setupChatDomain registers /api/v1/chat and /api/v1/sessions/*.
func (srv HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup) {
	h := chatHTTP.New(srv.l, srv.chatUC)
	chatHTTP.RegisterRoutes(api, h)
	srv.l.Infof(ctx, "Chat domain registered")
}
