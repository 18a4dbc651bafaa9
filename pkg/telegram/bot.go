package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetWebhook registers the public webhook URL with Telegram.
func (b *Bot) SetWebhook(webhookURL string) error {
	return b.call("setWebhook", map[string]string{"url": webhookURL})
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageWithMode sends a message with a parse mode ("HTML" for the
// formatted notifications this service composes, empty for plain text).
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	return b.call("sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
}

// call posts payload to a Bot API method and validates the API-level result,
// so transport failures and ok=false responses surface the same way.
func (b *Bot) call(method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: failed to marshal payload: %w", method, err)
	}

	resp, err := b.httpClient.Post(
		fmt.Sprintf("%s/%s", b.apiURL, method),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("telegram %s: failed to decode response (status %d): %w", method, resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}

	return nil
}
