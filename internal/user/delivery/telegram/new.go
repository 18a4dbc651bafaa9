package telegram

import (
	"github.com/gin-gonic/gin"

	"github-relay/internal/user"
	pkgLog "github-relay/pkg/log"
	pkgTelegram "github-relay/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc user.UseCase,
	bot *pkgTelegram.Bot,
) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
	}
}
