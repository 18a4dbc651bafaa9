package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github-relay/internal/middleware"
	tgDelivery "github-relay/internal/user/delivery/telegram"
	"github-relay/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	middleware  middleware.Middleware

	// GitHub webhook relay
	webhookHandler interface {
		HandleGitHubWebhook(c *gin.Context)
	}

	// Telegram bot commands
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// GitHub webhook relay
	WebhookHandler interface {
		HandleGitHubWebhook(c *gin.Context)
	}

	// Telegram bot commands
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		middleware:      middleware.New(logger),
		webhookHandler:  cfg.WebhookHandler,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

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
	if srv.webhookHandler == nil {
		return errors.New("webhook handler is required")
	}
	return nil
}
