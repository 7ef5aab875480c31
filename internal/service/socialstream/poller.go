package socialstream

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"SentiCast/internal/domain/models"
	drepo "SentiCast/internal/domain/repository"
	xhttp "SentiCast/pkg/http"
)

const (
	defaultPollInterval = 30 * time.Second
	pollTimeout         = 10 * time.Second
	pollLimit           = 100
)

// Poller implements a MentionStream over periodic REST fetches for
// deployments without websocket access.
type Poller struct {
	client   *xhttp.Client
	restURL  string
	apiKey   string
	sources  []string
	interval time.Duration

	connected bool
	cursor    time.Time
}

// NewPoller creates a REST-backed MentionStream.
func NewPoller(apiKey, restURL string, sources []string, interval time.Duration) drepo.MentionStream {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if len(sources) == 0 {
		sources = drepo.DefaultSources()
	}
	return &Poller{
		client:   xhttp.NewClient(xhttp.WithTimeout(pollTimeout)),
		restURL:  restURL,
		apiKey:   apiKey,
		sources:  sources,
		interval: interval,
	}
}

// Connect validates configuration. No connection is held between polls.
func (p *Poller) Connect(ctx context.Context) error {
	if p.restURL == "" {
		return fmt.Errorf("socialstream poller: rest url not configured")
	}
	p.connected = true
	p.cursor = time.Now().UTC().Add(-p.interval)
	return nil
}

// Subscribe is a no-op: sources travel as query parameters.
func (p *Poller) Subscribe(ctx context.Context) error {
	if !p.connected {
		return fmt.Errorf("socialstream poller not connected")
	}
	return nil
}

// Read polls each source on a fixed interval and streams the results.
func (p *Poller) Read(ctx context.Context) (<-chan *models.Mention, <-chan error) {
	mentions := make(chan *models.Mention, 1024)
	errs := make(chan error, 1)

	go func() {
		defer close(mentions)
		defer close(errs)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				since := p.cursor
				p.cursor = time.Now().UTC()
				for _, source := range p.sources {
					batch, err := p.fetch(ctx, source, since)
					if err != nil {
						log.Printf("socialstream: poll %s: %v", source, err)
						continue
					}
					for _, m := range batch {
						select {
						case mentions <- m:
						default:
							// drop on backpressure
						}
					}
				}
			}
		}
	}()

	return mentions, errs
}

// fetch pulls one page of recent mentions for a source.
func (p *Poller) fetch(ctx context.Context, source string, since time.Time) ([]*models.Mention, error) {
	var page []wireMention
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.restURL + "/mentions",
		Headers: map[string]string{
			"Authorization": "Bearer " + p.apiKey,
		},
		QueryParams: map[string][]string{
			"source": {source},
			"limit":  {strconv.Itoa(pollLimit)},
			"since":  {strconv.FormatInt(since.UnixMilli(), 10)},
		},
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("fetch mentions: %w", err)
	}

	out := make([]*models.Mention, 0, len(page))
	for _, d := range page {
		out = append(out, &models.Mention{
			ID:        d.ID,
			Source:    d.Source,
			Author:    d.Author,
			Text:      d.Text,
			Timestamp: time.UnixMilli(d.CreatedAt).UTC(),
		})
	}
	return out, nil
}

// Reconnect resets the poll cursor.
func (p *Poller) Reconnect(ctx context.Context) error {
	return p.Connect(ctx)
}

// Close stops future polls.
func (p *Poller) Close() error {
	p.connected = false
	return nil
}

// IsConnected indicates status.
func (p *Poller) IsConnected() bool { return p.connected }
