package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
	"SentiCast/pkg/config"
)

func testRecords() []models.AnomalyRecord {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return []models.AnomalyRecord{
		{Date: day, Channel: models.ChannelNegative, Observed: 60, Expected: 25, Deviation: 4.2, Severity: models.SeverityHigh},
		{Date: day.AddDate(0, 0, 1), Channel: models.ChannelPositive, Observed: 30, Expected: 45, Deviation: 2.4, Severity: models.SeverityMedium},
	}
}

func newTestWebhook(url string, retries int) *Webhook {
	cfg := &config.Config{}
	cfg.Notify.WebhookURL = url
	cfg.Notify.MaxRetries = retries
	cfg.Notify.Timeout = time.Second
	return NewWebhook(cfg, nil)
}

func TestNotifyAnomaliesFiltersToHighSeverity(t *testing.T) {
	var got alertPayload
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := newTestWebhook(srv.URL, 0)
	if err := wh.NotifyAnomalies(context.Background(), testRecords()); err != nil {
		t.Fatalf("NotifyAnomalies: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
	if got.Count != 1 || len(got.Alerts) != 1 {
		t.Fatalf("payload = %+v, want exactly the high severity record", got)
	}
	a := got.Alerts[0]
	if a.Severity != models.SeverityHigh || a.Channel != models.ChannelNegative || a.Date != "2025-06-10" {
		t.Errorf("alert = %+v", a)
	}
	if got.Service != "senticast" {
		t.Errorf("service = %q", got.Service)
	}
}

func TestNotifyAnomaliesDisabledWithoutURL(t *testing.T) {
	wh := newTestWebhook("", 0)
	if wh.Enabled() {
		t.Fatal("webhook with empty URL reports enabled")
	}
	if err := wh.NotifyAnomalies(context.Background(), testRecords()); err != nil {
		t.Fatalf("disabled webhook returned error: %v", err)
	}
}

func TestNotifyAnomaliesSkipsWhenNothingHigh(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	wh := newTestWebhook(srv.URL, 0)
	medium := []models.AnomalyRecord{{Channel: models.ChannelNeutral, Severity: models.SeverityMedium}}
	if err := wh.NotifyAnomalies(context.Background(), medium); err != nil {
		t.Fatalf("NotifyAnomalies: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", calls.Load())
	}
}

func TestNotifyAnomaliesRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := newTestWebhook(srv.URL, 2)
	if err := wh.NotifyAnomalies(context.Background(), testRecords()); err != nil {
		t.Fatalf("NotifyAnomalies after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestNotifyAnomaliesFailsWhenAttemptsExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := newTestWebhook(srv.URL, 1)
	if err := wh.NotifyAnomalies(context.Background(), testRecords()); err == nil {
		t.Fatal("expected delivery error")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}
