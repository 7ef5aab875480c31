package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
	"SentiCast/internal/services/privacy"
	"SentiCast/internal/services/sentiment"
)

type capturingStorage struct {
	fakeStorage
	stored []*models.Mention
}

func (c *capturingStorage) Store(_ context.Context, m *models.Mention) error {
	c.stored = append(c.stored, m)
	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordMessageSent(string, string) {}

func (noopMetrics) RecordError(string) {}

func (noopMetrics) RecordChannelShare(string, float64) {}

func (noopMetrics) RecordLatency(string, float64) {}

func TestKafkaMentionsHandlerStoresScrubbedMention(t *testing.T) {
	storage := &capturingStorage{}
	h := NewKafkaMentionsHandler("senticast.mentions", storage, noopMetrics{}, privacy.NewScrubber("test-salt"), sentiment.NewAnalyzer())

	msg := []byte(`{"id":"m-1","source":"twitter","author":"alice","text":"love the new release, reach me at alice@example.com","ts":1767225600000}`)
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(storage.stored) != 1 {
		t.Fatalf("stored = %d, want 1", len(storage.stored))
	}

	m := storage.stored[0]
	if m.ID != "m-1" || m.Source != "twitter" {
		t.Errorf("identity fields lost: %+v", m)
	}
	if m.Author == "alice" {
		t.Error("author handle stored in the clear")
	}
	if strings.Contains(m.Text, "alice@example.com") {
		t.Errorf("email survived scrubbing: %q", m.Text)
	}
	if m.Label == "" {
		t.Error("mention not classified")
	}
	want := time.UnixMilli(1767225600000)
	if !m.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", m.Timestamp, want)
	}
}

func TestKafkaMentionsHandlerSecondsTimestamp(t *testing.T) {
	storage := &capturingStorage{}
	h := NewKafkaMentionsHandler("senticast.mentions", storage, noopMetrics{}, privacy.NewScrubber("test-salt"), sentiment.NewAnalyzer())

	msg := []byte(`{"id":"m-2","source":"reddit","author":"bob","text":"meh","ts":1767225600}`)
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := time.Unix(1767225600, 0)
	if got := storage.stored[0].Timestamp; !got.Equal(want) {
		t.Errorf("timestamp = %v, want %v", got, want)
	}
}

func TestKafkaMentionsHandlerMalformedPayload(t *testing.T) {
	storage := &capturingStorage{}
	h := NewKafkaMentionsHandler("senticast.mentions", storage, noopMetrics{}, privacy.NewScrubber("test-salt"), sentiment.NewAnalyzer())

	if err := h.Handle(context.Background(), []byte(`{"id":`)); err == nil {
		t.Fatal("expected unmarshal error for the retry/DLQ path")
	}
	if len(storage.stored) != 0 {
		t.Errorf("stored = %d, want 0", len(storage.stored))
	}
}
