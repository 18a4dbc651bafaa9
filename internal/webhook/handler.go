package webhook

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github-relay/internal/automation"
	"github-relay/internal/model"
)

// HandleGitHubWebhook processes GitHub webhook events
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	// Read body
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	// Check IP whitelist
	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Webhook from non-whitelisted IP: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	// Verify signature over the raw body
	signature := c.GetHeader(HeaderSignature256)
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "GitHub signature verification failed: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
		return
	}

	// Check rate limit
	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	// Classify event
	eventHeader := c.GetHeader(HeaderEvent)
	if eventHeader == "" {
		h.l.Warnf(ctx, "Webhook request without %s header", HeaderEvent)
		c.JSON(http.StatusForbidden, gin.H{"error": "missing event header"})
		return
	}

	kind := model.ClassifyEvent(eventHeader)

	// Decode event
	var event *DecodedEvent
	switch kind {
	case model.KindPush:
		event, err = h.decoder.DecodePush(body)
	case model.KindPullRequest:
		event, err = h.decoder.DecodePullRequest(body)
	case model.KindRelease:
		event, err = h.decoder.DecodeRelease(body)
	case model.KindWorkflow:
		event, err = h.decoder.DecodeWorkflow(body)
	case model.KindPing, model.KindIssues:
		// Recognized but intentionally not relayed
		h.l.Infof(ctx, "Ignoring %s event (delivery %s)", kind, c.GetHeader(HeaderDelivery))
		c.Status(http.StatusNoContent)
		return
	default:
		h.l.Infof(ctx, "Unsupported GitHub event type: %s", eventHeader)
		c.Status(http.StatusNoContent)
		return
	}

	if err != nil {
		h.l.Errorf(ctx, "Failed to decode %s event: %v", kind, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	// Acknowledge immediately, process in background
	c.Status(http.StatusNoContent)
	go h.processEventAsync(*event)
}

// processEventAsync notifies the channel and, for merged pull requests, runs
// the QA automation. Runs detached from the request with its own deadline.
func (h *Handler) processEventAsync(event DecodedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	h.l.Infof(ctx, "Processing %s event async", event.Kind)

	if err := h.notifierSvc.Notify(ctx, event.Message); err != nil {
		h.l.Errorf(ctx, "Failed to deliver %s notification: %v", event.Kind, err)
	}

	pr := event.PullRequest
	if event.Kind != model.KindPullRequest || pr == nil {
		return
	}
	if pr.Action != "closed" || !pr.PullRequest.Merged {
		return
	}

	output, err := h.automationUC.ProcessMergedPullRequest(ctx, automation.ProcessMergedPullRequestInput{
		Title:      pr.PullRequest.Title,
		PRNumber:   pr.Number,
		PRURL:      pr.PullRequest.HTMLURL,
		Repository: pr.Repository.FullName,
	})
	if err != nil {
		h.l.Errorf(ctx, "Merged PR processing failed: %v", err)
		return
	}

	h.l.Infof(ctx, "Merged PR #%d processed: %s", pr.Number, output.Message)
}
