package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ngrok's local inspection API needs a few seconds to come up alongside the
// tunnel, so detection polls instead of failing on the first miss.
const (
	ngrokDetectAttempts = 10
	ngrokRetryDelay     = 3 * time.Second
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL polls the ngrok local API until a tunnel URL is available.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= ngrokDetectAttempts; attempt++ {
		publicURL, err := queryNgrokTunnel(ctx, client, url)
		if err == nil && publicURL != "" {
			return publicURL, nil
		}
		lastErr = err

		if attempt < ngrokDetectAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokRetryDelay):
			}
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("ngrok API not reachable after %d attempts: %w", ngrokDetectAttempts, lastErr)
	}
	return "", fmt.Errorf("ngrok has no active tunnels after %d attempts", ngrokDetectAttempts)
}

// queryNgrokTunnel returns the public URL of an HTTPS tunnel, falling back to
// the first tunnel of any protocol. An empty URL with nil error means ngrok
// answered but has no tunnels yet.
func queryNgrokTunnel(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", nil
}
