// Package notify tells external systems about pipeline stage changes.
package notify

import (
	"context"
	"time"

	httpclient "ats-pipeline/pkg/http"
)

// Event is the payload posted for one stage change.
type Event struct {
	TenantID    string    `json:"tenant_id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	FromStageID string    `json:"from_stage_id"`
	ToStageID   string    `json:"to_stage_id"`
	MovedBy     string    `json:"moved_by,omitempty"`
	MovedAt     time.Time `json:"moved_at"`
}

// Webhook posts events as JSON to a fixed URL.
type Webhook struct {
	url    string
	client *httpclient.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{url: url, client: httpclient.NewClient(timeout)}
}

// StageChanged delivers one event. Delivery is attempted once.
func (w *Webhook) StageChanged(ctx context.Context, e Event) error {
	return w.client.PostJSON(ctx, w.url, e)
}
