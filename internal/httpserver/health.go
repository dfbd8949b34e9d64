package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tailortalk/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "TailorTalk scheduling assistant"
	HealthVersion = "1.0.0"
	ServiceName   = "tailortalk"

	healthCheckTimeout = 3 * time.Second
)

// healthResp is the body of GET /health.
type healthResp struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	Version           string `json:"version"`
	CalendarConnected bool   `json:"calendar_connected"`
	AgentReady        bool   `json:"agent_ready"`
	ActiveSessions    int    `json:"active_sessions"`
	CurrentTimezone   string `json:"current_timezone"`
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Reports calendar connectivity, agent readiness and session count
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} healthResp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResp{
		Status:          "healthy",
		Service:         ServiceName,
		Version:         srv.version,
		AgentReady:      srv.chatUC.AgentReady(),
		CurrentTimezone: srv.schedulingUC.DefaultTimezone(),
	}

	if err := srv.schedulingUC.Ping(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.healthCheck: calendar ping: %v", err)
		resp.Status = "degraded"
	} else {
		resp.CalendarConnected = true
	}

	if stats, err := srv.chatUC.Stats(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.healthCheck: session stats: %v", err)
		resp.Status = "degraded"
	} else {
		resp.ActiveSessions = stats.ActiveSessions
	}

	response.OK(c, resp)
}

// readyCheck reports ready only when the session store answers.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Session store unavailable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if _, err := srv.chatUC.Stats(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: %v", err)
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "session store unavailable",
		})
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"message": HealthMessage,
		"version": srv.version,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": srv.version,
		"service": ServiceName,
	})
}
