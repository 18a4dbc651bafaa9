package kaiten

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
)

// ErrMoveRejected is returned when the tracker accepted the request but the
// returned card is not in the requested column.
var ErrMoveRejected = errors.New("kaiten: card move rejected by tracker")

// Client is the HTTP wrapper for the Kaiten REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Kaiten client authenticated with a static bearer
// token. The client handle is safe for concurrent use.
func NewClient(ctx context.Context, baseURL, apiToken string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiToken})
	return &Client{
		baseURL:    baseURL,
		httpClient: oauth2.NewClient(ctx, ts),
	}
}

// SetBaseURL overrides the API base URL for testing purposes.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// MoveCard moves the card to the given column via PATCH /api/latest/cards/{id}
// and validates the move against the card returned by the tracker.
func (c *Client) MoveCard(ctx context.Context, cardID, columnID string) error {
	column, err := strconv.ParseUint(columnID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid column id %q: %w", columnID, err)
	}

	body, err := json.Marshal(moveCardRequest{ColumnID: column})
	if err != nil {
		return fmt.Errorf("failed to marshal move card request: %w", err)
	}

	url := fmt.Sprintf("%s/api/latest/cards/%s", c.baseURL, cardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build move card request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call kaiten move card API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("kaiten API move card error %d: %s", resp.StatusCode, string(raw))
	}

	var card Card
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return fmt.Errorf("failed to decode kaiten move card response: %w", err)
	}

	if card.ColumnID != column {
		return fmt.Errorf("%w: card %s is in column %d, requested %d", ErrMoveRejected, cardID, card.ColumnID, column)
	}

	return nil
}
