package socialstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"SentiCast/internal/domain/models"
	drepo "SentiCast/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// sampleTexts feed the mock generator so the pipeline works without
// firehose credentials.
var sampleTexts = []string{
	"Absolutely loving the new product! Best purchase I've made this year!",
	"Customer service was incredibly helpful and responsive. Highly recommend!",
	"Not impressed with the quality. Expected better for the price.",
	"The product works fine, nothing special but does what it's supposed to do.",
	"Had some issues initially but support team resolved everything quickly!",
	"Disappointed with the delivery time. Product is good though.",
	"This company really knows how to take care of their customers!",
	"Average experience. Product is okay, service could be better.",
	"Wow! Exceeded all my expectations. Will definitely buy again!",
	"Terrible experience. Would not recommend to anyone.",
}

const defaultMockPerMinute = 60

// Client implements a MentionStream backed by a social firehose
// WebSocket. Without an API key, or when the dial fails, it degrades
// to a deterministic mock generator so downstream stages keep flowing.
type Client struct {
	apiKey         string
	websocketURL   string
	sources        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	mockPerMinute  int

	conn      *websocket.Conn
	connected bool
	mock      bool
	rng       *rand.Rand
	seq       int
}

// New creates a firehose MentionStream.
func New(apiKey, websocketURL string, sources []string, reconnectDelay, pingInterval time.Duration, mockPerMinute int) drepo.MentionStream {
	if mockPerMinute <= 0 {
		mockPerMinute = defaultMockPerMinute
	}
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		sources:        sources,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		mockPerMinute:  mockPerMinute,
		rng:            rand.New(rand.NewSource(1)),
	}
}

// Connect establishes the WebSocket connection, or switches to mock
// mode when no credentials are configured or the dial fails.
func (c *Client) Connect(ctx context.Context) error {
	if c.apiKey == "" || c.websocketURL == "" {
		log.Printf("socialstream: no credentials, using mock generator")
		c.mock = true
		c.connected = true
		return nil
	}
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		log.Printf("socialstream: dial failed (%v), using mock generator", err)
		c.mock = true
		c.connected = true
		return nil
	}
	c.conn = conn
	c.connected = true
	log.Printf("socialstream: connected")
	return nil
}

// Subscribe subscribes to the configured sources.
func (c *Client) Subscribe(ctx context.Context) error {
	if !c.connected {
		return fmt.Errorf("socialstream not connected")
	}
	if c.mock {
		return nil
	}
	for _, s := range c.sources {
		msg := map[string]string{"type": "subscribe", "source": s}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
		log.Printf("socialstream: subscribed %s", s)
	}
	return nil
}

type wireMention struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"` // ms
}

type wireFrame struct {
	Type string        `json:"type"`
	Data []wireMention `json:"data"`
}

// Read streams mention events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Mention, <-chan error) {
	mentions := make(chan *models.Mention, 1024)
	errs := make(chan error, 1)

	if c.mock {
		go c.generate(ctx, mentions, errs)
		return mentions, errs
	}

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(mentions)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("socialstream conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("socialstream read: %w", err)
					return
				}
				var frame wireFrame
				if err := json.Unmarshal(b, &frame); err != nil {
					// ignore non-mention frames
					continue
				}
				if frame.Type != "mention" {
					continue
				}
				for _, d := range frame.Data {
					m := &models.Mention{
						ID:        d.ID,
						Source:    d.Source,
						Author:    d.Author,
						Text:      d.Text,
						Timestamp: time.UnixMilli(d.CreatedAt).UTC(),
					}
					select {
					case mentions <- m:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return mentions, errs
}

// generate emits synthetic mentions at the configured rate, rotating
// through the configured sources.
func (c *Client) generate(ctx context.Context, mentions chan<- *models.Mention, errs chan<- error) {
	defer close(mentions)
	defer close(errs)

	interval := time.Minute / time.Duration(c.mockPerMinute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sources := c.sources
	if len(sources) == 0 {
		sources = drepo.DefaultSources()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			m := &models.Mention{
				ID:        fmt.Sprintf("mock_%d_%d", c.seq, now.Unix()),
				Source:    sources[c.seq%len(sources)],
				Author:    fmt.Sprintf("mock_user_%03d", c.rng.Intn(500)),
				Text:      sampleTexts[c.rng.Intn(len(sampleTexts))],
				Timestamp: now,
			}
			c.seq++
			select {
			case mentions <- m:
			default:
			}
		}
	}
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
