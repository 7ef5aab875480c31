package usecase

import (
	"context"
	"encoding/json"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	imetrics "SentiCast/internal/service/metrics"
	pkgkafka "SentiCast/pkg/kafka"
)

// KafkaMentionsHandler consumes mention messages, classifies them and
// writes them to storage. Malformed payloads are returned as errors so
// the consumer's retry/DLQ machinery takes over.
type KafkaMentionsHandler struct {
	topic    string
	storage  domrepo.Storage
	metrics  domrepo.Metrics
	scrubber domsvc.Scrubber
	analyzer domsvc.Analyzer
}

func NewKafkaMentionsHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics, scrubber domsvc.Scrubber, analyzer domsvc.Analyzer) *KafkaMentionsHandler {
	return &KafkaMentionsHandler{topic: topic, storage: storage, metrics: metrics, scrubber: scrubber, analyzer: analyzer}
}

func (h *KafkaMentionsHandler) Topic() string { return h.topic }

// incoming message schema: {id, source, author, text, ts}
func (h *KafkaMentionsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		ID     string `json:"id"`
		Source string `json:"source"`
		Author string `json:"author"`
		Text   string `json:"text"`
		TS     int64  `json:"ts"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	ts := time.UnixMilli(m.TS)
	if m.TS < 1e11 { // seconds
		ts = time.Unix(m.TS, 0)
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(ts).Seconds())

	clean, kinds := h.scrubber.Scrub(m.Text)
	for _, k := range kinds {
		imetrics.PIIScrubbed.WithLabelValues(k).Inc()
	}
	sc := h.analyzer.Analyze(clean)

	start := time.Now()
	err := h.storage.Store(ctx, &models.Mention{
		ID:         m.ID,
		Source:     m.Source,
		Author:     h.scrubber.HashAuthor(m.Author),
		Text:       clean,
		Timestamp:  ts,
		Label:      sc.Label,
		Score:      sc.Score,
		Confidence: sc.Confidence,
	})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordMessageSent("clickhouse", m.Source)
	imetrics.MentionsIngested.WithLabelValues(m.Source).Inc()
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaMentionsHandler)(nil)
