package socialstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
)

func TestMockStreamEmitsMentions(t *testing.T) {
	c := New("", "", []string{"twitter", "reddit"}, time.Millisecond, time.Second, 60000)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !c.IsConnected() {
		t.Fatal("not connected after Connect")
	}
	if err := c.Subscribe(ctx); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	mentions, _ := c.Read(ctx)
	got := make([]*models.Mention, 0, 4)
	timeout := time.After(5 * time.Second)
	for len(got) < 4 {
		select {
		case m := <-mentions:
			if m == nil {
				t.Fatal("stream closed early")
			}
			got = append(got, m)
		case <-timeout:
			t.Fatal("timed out waiting for mock mentions")
		}
	}

	wantSources := []string{"twitter", "reddit", "twitter", "reddit"}
	for i, m := range got {
		if m.Source != wantSources[i] {
			t.Errorf("mention %d source = %q, want %q", i, m.Source, wantSources[i])
		}
		if !strings.HasPrefix(m.ID, "mock_") {
			t.Errorf("mention %d id = %q", i, m.ID)
		}
		if m.Text == "" || m.Author == "" || m.Timestamp.IsZero() {
			t.Errorf("mention %d incomplete: %+v", i, m)
		}
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-mentions:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("mention channel not closed after cancel")
		}
	}
}

func TestPollerFetchesMentions(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mentions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("auth header = %q", got)
		}
		source := r.URL.Query().Get("source")
		if r.URL.Query().Get("limit") == "" || r.URL.Query().Get("since") == "" {
			t.Error("missing limit or since query param")
		}
		_ = json.NewEncoder(w).Encode([]wireMention{{
			ID:        source + "-1",
			Source:    source,
			Author:    "someone",
			Text:      "love it",
			CreatedAt: now.UnixMilli(),
		}})
	}))
	defer srv.Close()

	p := NewPoller("k", srv.URL, []string{"twitter", "news"}, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := p.Subscribe(ctx); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	mentions, _ := p.Read(ctx)
	bySource := map[string]*models.Mention{}
	timeout := time.After(5 * time.Second)
	for len(bySource) < 2 {
		select {
		case m := <-mentions:
			if m == nil {
				t.Fatal("stream closed early")
			}
			bySource[m.Source] = m
		case <-timeout:
			t.Fatal("timed out waiting for polled mentions")
		}
	}

	tw := bySource["twitter"]
	if tw == nil || tw.ID != "twitter-1" || tw.Text != "love it" {
		t.Fatalf("twitter mention = %+v", tw)
	}
	if !tw.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", tw.Timestamp, now)
	}
}

func TestPollerRequiresURL(t *testing.T) {
	p := NewPoller("k", "", nil, 0)
	if err := p.Connect(context.Background()); err == nil {
		t.Fatal("expected error for missing rest url")
	}
	if p.IsConnected() {
		t.Fatal("poller connected without url")
	}
}
