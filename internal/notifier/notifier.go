package notifier

import (
	"context"

	"github-relay/pkg/telegram"
)

// Service delivers notification messages to the team channel.
type Service interface {
	Notify(ctx context.Context, text string) error
}

type telegramNotifier struct {
	bot    *telegram.Bot
	chatID int64
}

// NewTelegram returns a Service that sends HTML-formatted messages to the
// configured Telegram chat.
func NewTelegram(bot *telegram.Bot, chatID int64) Service {
	return &telegramNotifier{
		bot:    bot,
		chatID: chatID,
	}
}

func (n *telegramNotifier) Notify(_ context.Context, text string) error {
	return n.bot.SendMessageWithMode(n.chatID, text, "HTML")
}
