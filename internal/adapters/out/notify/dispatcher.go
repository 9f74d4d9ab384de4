// Package notify delivers assignment notifications to engineers through a
// webhook endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fieldops/internal/core/ports"
)

// WebhookDispatcher posts assignment notifications to a configured webhook.
// Delivery is best-effort: failures are logged and reported as undelivered,
// never as errors, so a broken notification channel cannot fail an
// assignment.
type WebhookDispatcher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewWebhookDispatcher creates a dispatcher posting to the given endpoint.
// An empty endpoint disables delivery: every Notify reports undelivered.
func NewWebhookDispatcher(endpoint string, timeout time.Duration, logger *slog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "webhook_dispatcher"),
	}
}

// notificationPayload is the webhook wire format.
type notificationPayload struct {
	EngineerID string `json:"engineer_id"`
	JobID      string `json:"job_id"`
	JobNumber  string `json:"job_number"`
	ClientName string `json:"client_name"`
}

// Notify posts the notification and reports whether it was delivered.
func (d *WebhookDispatcher) Notify(ctx context.Context, n ports.AssignmentNotification) bool {
	if d.endpoint == "" {
		return false
	}

	payload, err := json.Marshal(notificationPayload{
		EngineerID: n.EngineerID.String(),
		JobID:      n.JobID.String(),
		JobNumber:  n.JobNumber,
		ClientName: n.ClientName,
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to encode notification",
			"job_id", n.JobID.String(), "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to build notification request",
			"job_id", n.JobID.String(), "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.WarnContext(ctx, "notification delivery failed",
			"job_id", n.JobID.String(),
			"engineer_id", n.EngineerID.String(),
			"error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.logger.WarnContext(ctx, "notification rejected by webhook",
			"job_id", n.JobID.String(),
			"engineer_id", n.EngineerID.String(),
			"status", resp.StatusCode)
		return false
	}

	return true
}
