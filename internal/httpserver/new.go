package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tailortalk/config"
	"tailortalk/internal/chat"
	tgDelivery "tailortalk/internal/chat/delivery/telegram"
	"tailortalk/internal/scheduling"
	"tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	srv         *http.Server
	l           log.Logger
	port        int
	mode        string
	environment string
	version     string

	// Middleware
	cors      config.CORSConfig
	rateLimit config.RateLimitConfig
	metrics   *metrics.Metrics

	// Domains
	schedulingUC    scheduling.UseCase
	chatUC          chat.UseCase
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string
	Version     string

	// TrustedProxies may set the client IP through forwarding headers.
	// Empty trusts none.
	TrustedProxies []string

	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Metrics   *metrics.Metrics

	SchedulingUC scheduling.UseCase
	ChatUC       chat.UseCase

	// TelegramHandler is optional.
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		version:         cfg.Version,
		cors:            cfg.CORS,
		rateLimit:       cfg.RateLimit,
		metrics:         cfg.Metrics,
		schedulingUC:    cfg.SchedulingUC,
		chatUC:          cfg.ChatUC,
		telegramHandler: cfg.TelegramHandler,
	}
	if srv.version == "" {
		srv.version = HealthVersion
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	srv.mapHandlers()

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.schedulingUC == nil {
		return errors.New("scheduling usecase is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat usecase is required")
	}
	return nil
}

// Handler exposes the gin engine, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}
