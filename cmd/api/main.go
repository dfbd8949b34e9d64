package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tailortalk/config"
	_ "tailortalk/docs" // Swagger docs
	"tailortalk/internal/agent"
	"tailortalk/internal/agent/orchestrator"
	"tailortalk/internal/agent/tools"
	"tailortalk/internal/chat"
	tgDelivery "tailortalk/internal/chat/delivery/telegram"
	chatUsecase "tailortalk/internal/chat/usecase"
	"tailortalk/internal/httpserver"
	"tailortalk/internal/scheduling"
	"tailortalk/internal/scheduling/repository/gcal"
	schedulingUsecase "tailortalk/internal/scheduling/usecase"
	sessionRepo "tailortalk/internal/session/repository"
	"tailortalk/internal/session/repository/memory"
	redisRepo "tailortalk/internal/session/repository/redis"
	"tailortalk/pkg/gcalendar"
	"tailortalk/pkg/llmprovider"
	"tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
	"tailortalk/pkg/slotfinder"
	"tailortalk/pkg/telegram"
)

// @title       TailorTalk Scheduling API
// @description Conversational scheduling assistant backed by Google Calendar.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting TailorTalk...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	m := metrics.New()

	// 3. Google Calendar
	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath,
		gcalendar.WithTokenPath(cfg.GoogleCalendar.TokenPath))
	if err != nil {
		logger.Errorf(ctx, "Google Calendar not available: %v", err)
		logger.Error(ctx, "→ Run `go run ./cmd/cli auth` to generate the token file")
		return
	}
	calendarRepo := gcal.New(calendarClient, cfg.GoogleCalendar.CalendarID, cfg.GoogleCalendar.BusyCalendarIDs, logger)

	// 4. Scheduling domain
	schedulingUC := schedulingUsecase.New(logger, calendarRepo, schedulingUsecase.Config{
		Timezone: cfg.Scheduling.Timezone,
		BusinessHours: slotfinder.BusinessHours{
			OpenHour:  cfg.Scheduling.OpenHour,
			CloseHour: cfg.Scheduling.CloseHour,
		},
		EndOfBusinessHour:      cfg.Scheduling.EndOfBusinessHour,
		DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes,
		MaxSlots:               cfg.Scheduling.MaxSlots,
	}, m)

	// 5. Sessions
	sessions, closeSessions, err := newSessionRepository(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize session store: %v", err)
		return
	}
	defer closeSessions()

	// 6. LLM agent (optional)
	chatAgent := newAgent(ctx, cfg, logger, schedulingUC, m)

	// 7. Chat domain
	chatUC := chatUsecase.New(logger, sessions, chatAgent, schedulingUC, m)

	// 8. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, chatUC, bot)
		registerTelegramWebhook(ctx, cfg.Telegram, bot, logger)
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		CORS:            cfg.CORS,
		RateLimit:       cfg.RateLimit,
		Metrics:         m,
		SchedulingUC:    schedulingUC,
		ChatUC:          chatUC,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func newSessionRepository(ctx context.Context, cfg *config.Config, logger log.Logger) (sessionRepo.Repository, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		logger.Infof(ctx, "Session store: memory (max %d, ttl %s)", cfg.Session.MaxEntries, cfg.Session.TTL)
		return memory.New(cfg.Session.MaxEntries, cfg.Session.TTL), func() {}, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}

	logger.Infof(ctx, "Session store: redis at %s", cfg.Redis.Addr)
	repo := redisRepo.New(client, redisRepo.Options{KeyPrefix: cfg.Session.KeyPrefix, TTL: cfg.Session.TTL}, logger)
	return repo, func() { _ = client.Close() }, nil
}

// newAgent returns nil when no LLM provider is usable; chat then answers
// with the rule-based flow.
func newAgent(ctx context.Context, cfg *config.Config, logger log.Logger, uc scheduling.UseCase, m *metrics.Metrics) chat.Agent {
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Warnf(ctx, "LLM agent disabled: %v", err)
		return nil
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger, llmprovider.WithMetrics(m))

	registry := agent.NewToolRegistry()
	tools.Register(registry, uc, logger)

	logger.Infof(ctx, "LLM agent ready with providers %v", manager.ProviderNames())
	return orchestrator.New(manager, registry, logger,
		orchestrator.WithMetrics(m),
		orchestrator.WithTemperature(cfg.LLM.Temperature),
	)
}

func registerTelegramWebhook(ctx context.Context, cfg config.TelegramConfig, bot *telegram.Bot, logger log.Logger) {
	// Register webhook: auto-detect ngrok or fallback to manual config
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPI != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.NgrokAPI)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		return
	}
	if err := bot.SetWebhook(webhookURL); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
