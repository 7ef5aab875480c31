// Package notify delivers anomaly alerts to external sinks.
package notify

import (
	"context"
	"fmt"
	"time"

	"SentiCast/internal/domain/models"
	"SentiCast/pkg/config"
	xhttp "SentiCast/pkg/http"
	applogger "SentiCast/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second
	retryBackoff   = 50 * time.Millisecond
)

// alertPayload is the wire format posted to the webhook.
type alertPayload struct {
	Service string       `json:"service"`
	SentAt  time.Time    `json:"sent_at"`
	Count   int          `json:"count"`
	Alerts  []alertEntry `json:"alerts"`
}

type alertEntry struct {
	Date      string  `json:"date"`
	Channel   string  `json:"channel"`
	Observed  float64 `json:"observed"`
	Expected  float64 `json:"expected"`
	Deviation float64 `json:"deviation"`
	Severity  string  `json:"severity"`
}

// Webhook posts high-severity anomaly batches to a configured URL with
// bounded retries. An empty URL disables delivery.
type Webhook struct {
	url      string
	attempts int
	client   *xhttp.Client
	log      *applogger.Logger
}

func NewWebhook(cfg *config.Config, log *applogger.Logger) *Webhook {
	timeout := cfg.Notify.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.Notify.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	return &Webhook{
		url:      cfg.Notify.WebhookURL,
		attempts: attempts,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:      log,
	}
}

// Enabled reports whether a webhook URL is configured.
func (w *Webhook) Enabled() bool {
	return w.url != ""
}

// NotifyAnomalies posts the high-severity subset of records. It is a
// no-op when disabled or when nothing crosses the severity bar.
func (w *Webhook) NotifyAnomalies(ctx context.Context, records []models.AnomalyRecord) error {
	if !w.Enabled() || len(records) == 0 {
		return nil
	}

	entries := make([]alertEntry, 0, len(records))
	for _, r := range records {
		if r.Severity != models.SeverityHigh {
			continue
		}
		entries = append(entries, alertEntry{
			Date:      r.Date.Format("2006-01-02"),
			Channel:   r.Channel,
			Observed:  r.Observed,
			Expected:  r.Expected,
			Deviation: r.Deviation,
			Severity:  r.Severity,
		})
	}
	if len(entries) == 0 {
		return nil
	}

	payload := alertPayload{
		Service: "senticast",
		SentAt:  time.Now().UTC(),
		Count:   len(entries),
		Alerts:  entries,
	}
	if err := w.post(ctx, payload); err != nil {
		if w.log != nil {
			w.log.Error("anomaly webhook delivery failed",
				applogger.Error(err),
				applogger.Int("alerts", len(entries)))
		}
		return err
	}
	if w.log != nil {
		w.log.Info("anomaly webhook delivered", applogger.Int("alerts", len(entries)))
	}
	return nil
}

func (w *Webhook) post(ctx context.Context, payload alertPayload) error {
	var err error
	for i := 1; i <= w.attempts; i++ {
		err = w.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    w.url,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			Body: payload,
		}, nil)
		if err == nil {
			return nil
		}
		if i == w.attempts {
			break
		}
		select {
		case <-time.After(time.Duration(i) * retryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("post webhook after %d attempts: %w", w.attempts, err)
}
