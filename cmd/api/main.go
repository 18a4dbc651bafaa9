package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github-relay/config"
	_ "github-relay/docs" // Swagger docs
	"github-relay/internal/automation"
	"github-relay/internal/httpserver"
	"github-relay/internal/notifier"
	userDelivery "github-relay/internal/user/delivery/telegram"
	userPostgre "github-relay/internal/user/repository/postgre"
	userUsecase "github-relay/internal/user/usecase"
	"github-relay/internal/webhook"
	"github-relay/pkg/kaiten"
	"github-relay/pkg/log"
	"github-relay/pkg/tasklink"
	"github-relay/pkg/telegram"
)

// @title       GitHub Relay API
// @description GitHub webhook relay with Telegram notifications and Kaiten task automation.
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

	logger.Info(ctx, "Starting GitHub Relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Task reference linker (pattern already validated by config.Load)
	linker, err := tasklink.New(cfg.Tracker.TaskPattern, cfg.Tracker.LinkTemplate)
	if err != nil {
		logger.Error(ctx, "Failed to build task linker: ", err)
		return
	}

	// 4. Telegram bot + notifier
	if cfg.Telegram.BotToken == "" {
		logger.Error(ctx, "TELEGRAM_BOT_TOKEN is required")
		return
	}
	telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
	notifierSvc := notifier.NewTelegram(telegramBot, cfg.Telegram.ChatID)

	// 5. Kaiten tracker + merge automation
	kaitenClient := kaiten.NewClient(ctx, cfg.Tracker.BaseURL, cfg.Tracker.APIToken)
	automationUC := automation.New(kaitenClient, notifierSvc, linker, cfg.Tracker.QAColumnID, logger)

	// 6. GitHub webhook handler
	webhookHandler := webhook.NewHandler(automationUC, notifierSvc, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, linker, logger)
	if !webhookHandler.SecretConfigured() {
		logger.Warn(ctx, "⚠️ WEBHOOK_SECRET is not set — GitHub signature verification is DISABLED. Do not run like this in production.")
	}

	// 7. User domain (optional, needs a database)
	var telegramHandler userDelivery.Handler
	if cfg.Database.DSN != "" {
		db, dbErr := sql.Open("postgres", cfg.Database.DSN)
		if dbErr != nil {
			logger.Error(ctx, "Failed to open database: ", dbErr)
			return
		}
		defer db.Close()
		if pingErr := db.PingContext(ctx); pingErr != nil {
			logger.Warnf(ctx, "Database not reachable yet: %v", pingErr)
		}

		userRepo := userPostgre.New(db, logger)
		userUC := userUsecase.New(userRepo, cfg.Telegram.AdminPassword, logger)
		telegramHandler = userDelivery.New(logger, userUC, telegramBot)

		// Register Telegram webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "DATABASE_DSN not set, Telegram bot commands disabled")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		WebhookHandler:  webhookHandler,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
