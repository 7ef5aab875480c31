package middleware

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
)

type stubProc struct {
	mu       sync.Mutex
	got      []*models.Mention
	failures int
}

func (s *stubProc) Process(ctx context.Context, m *models.Mention) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return context.DeadlineExceeded
	}
	s.got = append(s.got, m)
	return nil
}

func (s *stubProc) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

type nopMetrics struct{}

func (nopMetrics) RecordMessageSent(backend, source string)       {}
func (nopMetrics) RecordError(kind string)                        {}
func (nopMetrics) RecordChannelShare(channel string, pct float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)       {}

func validMention(id, source string) *models.Mention {
	return &models.Mention{
		ID:        id,
		Source:    source,
		Author:    "someone",
		Text:      "the rollout went fine",
		Timestamp: time.Now().UTC(),
	}
}

func TestPipelineForwardsValidMentions(t *testing.T) {
	proc := &stubProc{}
	p := NewMentionPipeline(proc, nopMetrics{})

	if err := p.Process(context.Background(), validMention("1", "twitter")); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("processed = %d, want 1", proc.count())
	}
}

func TestPipelineRejectsInvalidMentions(t *testing.T) {
	proc := &stubProc{}
	p := NewMentionPipeline(proc, nopMetrics{})
	ctx := context.Background()

	bad := []*models.Mention{
		nil,
		{Source: "twitter", Text: "x", Timestamp: time.Now()},          // no id
		{ID: "1", Source: "myspace", Text: "x", Timestamp: time.Now()}, // unknown source
		{ID: "1", Source: "twitter", Timestamp: time.Now()},            // no text
		{ID: "1", Source: "twitter", Text: "x"},                        // zero time
	}
	for i, m := range bad {
		if err := p.Process(ctx, m); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if proc.count() != 0 {
		t.Fatalf("processed = %d, want 0", proc.count())
	}
}

func TestPipelineThrottlesPerSource(t *testing.T) {
	proc := &stubProc{}
	p := NewMentionPipeline(proc, nopMetrics{}, WithMaxRPS(1))
	ctx := context.Background()

	if err := p.Process(ctx, validMention("1", "twitter")); err != nil {
		t.Fatalf("first mention: %v", err)
	}
	// Second mention inside the same second is dropped without error.
	if err := p.Process(ctx, validMention("2", "twitter")); err != nil {
		t.Fatalf("throttled mention returned error: %v", err)
	}
	// Other sources are throttled independently.
	if err := p.Process(ctx, validMention("3", "reddit")); err != nil {
		t.Fatalf("other source: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("processed = %d, want 2", proc.count())
	}
}

func TestPipelineAppliesTransform(t *testing.T) {
	proc := &stubProc{}
	p := NewMentionPipeline(proc, nopMetrics{}, WithTransform(func(m *models.Mention) *models.Mention {
		m.Text = strings.ToLower(m.Text)
		return m
	}))

	m := validMention("1", "news")
	m.Text = "GREAT Launch"
	if err := p.Process(context.Background(), m); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := proc.got[0].Text; got != "great launch" {
		t.Errorf("transformed text = %q", got)
	}
}

func TestPipelineBuffersAndFlushes(t *testing.T) {
	proc := &stubProc{failures: 1}
	p := NewMentionPipeline(proc, nopMetrics{}, WithBufferSize(4))
	p.Start(context.Background())
	defer p.Stop()

	if err := p.Process(context.Background(), validMention("1", "twitter")); err == nil {
		t.Fatal("expected downstream error")
	}

	deadline := time.Now().Add(2 * time.Second)
	for proc.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("buffered mention never flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if proc.got[0].ID != "1" {
		t.Errorf("flushed mention id = %q", proc.got[0].ID)
	}
}
