package usecase

import (
	"context"
	"fmt"
	"time"

	"SentiCast/internal/domain/models"
	drepo "SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	imetrics "SentiCast/internal/service/metrics"
)

// MentionProcessor classifies incoming mentions and routes them to the
// configured backend. Text is PII-scrubbed and the author pseudonymized
// before anything leaves the process.
type MentionProcessor struct {
	pub      drepo.Publisher
	store    drepo.Storage
	metrics  drepo.Metrics
	scrubber domsvc.Scrubber
	analyzer domsvc.Analyzer
	backend  string
	batchSz  int
	batchTO  time.Duration
}

// NewMentionProcessor creates a new MentionProcessor instance.
func NewMentionProcessor(
	pub drepo.Publisher,
	store drepo.Storage,
	metrics drepo.Metrics,
	scrubber domsvc.Scrubber,
	analyzer domsvc.Analyzer,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *MentionProcessor {
	return &MentionProcessor{
		pub:      pub,
		store:    store,
		metrics:  metrics,
		scrubber: scrubber,
		analyzer: analyzer,
		backend:  backend,
		batchSz:  batchSz,
		batchTO:  batchTO,
	}
}

// prepare scrubs and classifies a mention in place.
func (p *MentionProcessor) prepare(m *models.Mention) {
	clean, kinds := p.scrubber.Scrub(m.Text)
	m.Text = clean
	m.Author = p.scrubber.HashAuthor(m.Author)
	for _, k := range kinds {
		imetrics.PIIScrubbed.WithLabelValues(k).Inc()
	}
	if m.Label == "" {
		sc := p.analyzer.Analyze(m.Text)
		m.Label = sc.Label
		m.Score = sc.Score
		m.Confidence = sc.Confidence
	}
}

// Process handles a single mention and routes it to the configured backend.
func (p *MentionProcessor) Process(ctx context.Context, m *models.Mention) error {
	if m == nil {
		return fmt.Errorf("mention is nil")
	}

	start := time.Now()
	p.prepare(m)

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, m)
	case "clickhouse":
		err = p.store.Store(ctx, m)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process mention: %w", err)
	}

	p.metrics.RecordMessageSent(p.backend, m.Source)
	imetrics.MentionsIngested.WithLabelValues(m.Source).Inc()
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch handles multiple mentions in a batch.
func (p *MentionProcessor) ProcessBatch(ctx context.Context, mentions []*models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}

	start := time.Now()
	for _, m := range mentions {
		if m != nil {
			p.prepare(m)
		}
	}

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, mentions)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, mentions)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, m := range mentions {
		p.metrics.RecordMessageSent(p.backend, m.Source)
		imetrics.MentionsIngested.WithLabelValues(m.Source).Inc()
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *MentionProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
