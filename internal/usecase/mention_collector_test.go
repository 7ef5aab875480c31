package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
	"SentiCast/internal/services/privacy"
	"SentiCast/internal/services/sentiment"
)

// fakeStream fails its first Read immediately, the way a dropped
// websocket does, then serves mentions from the second channel after a
// reconnect.
type fakeStream struct {
	mu         sync.Mutex
	reads      int
	reconnects int
	second     chan *models.Mention
}

func (s *fakeStream) Connect(context.Context) error   { return nil }
func (s *fakeStream) Subscribe(context.Context) error { return nil }
func (s *fakeStream) Close() error                    { return nil }
func (s *fakeStream) IsConnected() bool               { return true }

func (s *fakeStream) Read(context.Context) (<-chan *models.Mention, <-chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.reads == 1 {
		mCh := make(chan *models.Mention)
		errCh := make(chan error, 1)
		errCh <- fmt.Errorf("stream read: connection reset")
		close(mCh)
		close(errCh)
		return mCh, errCh
	}
	return s.second, make(chan error)
}

func (s *fakeStream) Reconnect(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnects++
	return nil
}

func (s *fakeStream) Reconnects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconnects
}

type signalStorage struct {
	fakeStorage
	stored chan *models.Mention
}

func (s *signalStorage) Store(_ context.Context, m *models.Mention) error {
	s.stored <- m
	return nil
}

func TestCollectorReattachesAfterStreamFailure(t *testing.T) {
	stream := &fakeStream{second: make(chan *models.Mention, 1)}
	st := &signalStorage{stored: make(chan *models.Mention, 1)}
	proc := NewMentionProcessor(nil, st, noopMetrics{}, privacy.NewScrubber("test-salt"), sentiment.NewAnalyzer(), "clickhouse", 1, time.Second)
	col := NewMentionCollector(stream, proc, noopMetrics{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := col.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	stream.second <- &models.Mention{
		ID:        "m1",
		Source:    "twitter",
		Author:    "someone",
		Text:      "loving the new release",
		Timestamp: time.Now().UTC(),
	}

	select {
	case m := <-st.stored:
		if m.ID != "m1" {
			t.Fatalf("stored mention %q", m.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("mention from the reconnected stream was never processed")
	}
	if got := stream.Reconnects(); got != 1 {
		t.Fatalf("reconnects = %d, want 1", got)
	}
}
