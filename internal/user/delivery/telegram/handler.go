package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github-relay/internal/user"
	pkgLog "github-relay/pkg/log"
	pkgResponse "github-relay/pkg/response"
	pkgTelegram "github-relay/pkg/telegram"
)

type handler struct {
	l   pkgLog.Logger
	uc  user.UseCase
	bot *pkgTelegram.Bot
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine to avoid Telegram webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong while handling your command. Please try again.")
		}
	}()

	// Telegram acknowledged immediately
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	command, arg := splitCommand(msg.Text)

	switch command {
	case "/start":
		return h.handleStart(ctx, msg)
	case "/bind":
		return h.handleBind(ctx, msg, arg)
	case "/login":
		return h.handleLogin(ctx, msg, arg)
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"<b>Commands:</b>\n"+
				"/start — register with the bot\n"+
				"/bind &lt;github_login&gt; — link your GitHub account\n"+
				"/login &lt;password&gt; — become an admin",
			"HTML",
		)
	}

	// Not a known command; stay quiet in group chats
	return nil
}

func (h *handler) handleStart(ctx context.Context, msg *pkgTelegram.Message) error {
	output, err := h.uc.Register(ctx, user.RegisterInput{
		TelegramID:       msg.From.ID,
		TelegramUsername: msg.From.Username,
	})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: Register failed: %v", err)
		return err
	}

	if !output.Created {
		return h.bot.SendMessage(msg.Chat.ID, "👋 You are already registered.")
	}
	return h.bot.SendMessageWithMode(msg.Chat.ID,
		"👋 Welcome! You are registered.\n\nUse /bind &lt;github_login&gt; to link your GitHub account.",
		"HTML",
	)
}

func (h *handler) handleBind(ctx context.Context, msg *pkgTelegram.Message, login string) error {
	if login == "" {
		return h.bot.SendMessage(msg.Chat.ID, "Usage: /bind <github_login>")
	}

	bound, err := h.uc.BindGithub(ctx, user.BindGithubInput{
		TelegramID:  msg.From.ID,
		GithubLogin: login,
	})
	switch {
	case errors.Is(err, user.ErrInvalidGithubLogin):
		return h.bot.SendMessage(msg.Chat.ID, "That does not look like a GitHub login. Use 1-39 letters, digits or hyphens.")
	case errors.Is(err, user.ErrNotRegistered):
		return h.bot.SendMessage(msg.Chat.ID, "You are not registered yet. Send /start first.")
	case err != nil:
		h.l.Errorf(ctx, "telegram handler: BindGithub failed: %v", err)
		return err
	}

	return h.bot.SendMessage(msg.Chat.ID, fmt.Sprintf("🔗 Linked to GitHub account %s.", bound.GithubLogin))
}

func (h *handler) handleLogin(ctx context.Context, msg *pkgTelegram.Message, password string) error {
	if password == "" {
		return h.bot.SendMessage(msg.Chat.ID, "Usage: /login <password>")
	}

	_, err := h.uc.Login(ctx, user.LoginInput{
		TelegramID: msg.From.ID,
		Password:   password,
	})
	switch {
	case errors.Is(err, user.ErrWrongPassword):
		return h.bot.SendMessage(msg.Chat.ID, "Wrong password.")
	case errors.Is(err, user.ErrNotRegistered):
		return h.bot.SendMessage(msg.Chat.ID, "You are not registered yet. Send /start first.")
	case err != nil:
		h.l.Errorf(ctx, "telegram handler: Login failed: %v", err)
		return err
	}

	return h.bot.SendMessage(msg.Chat.ID, "🔑 You are now an admin.")
}

// splitCommand separates the command from its argument and strips the
// @botname suffix Telegram appends in group chats.
func splitCommand(text string) (command, arg string) {
	command, arg, _ = strings.Cut(strings.TrimSpace(text), " ")
	command, _, _ = strings.Cut(command, "@")
	return command, strings.TrimSpace(arg)
}
