package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"SentiCast/internal/domain/models"
	"SentiCast/internal/domain/repository"
	pkgkafka "SentiCast/pkg/kafka"
)

// ClickHouseStorage implements Storage for ClickHouse.
type ClickHouseStorage struct {
	db    *sql.DB
	table string
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB, table string) repository.Storage {
	return &ClickHouseStorage{db: db, table: table}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseStorage) Store(ctx context.Context, m *models.Mention) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, event_id, source, author, text, label, score, confidence) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		m.Timestamp,
		m.ID,
		m.Source,
		m.Author,
		m.Text,
		m.Label,
		m.Score,
		m.Confidence,
	)
	return err
}

func (s *ClickHouseStorage) StoreBatch(ctx context.Context, mentions []*models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	// Chunk size tuned to 2000 rows per batch.
	const chunkSize = 2000
	for start := 0; start < len(mentions); start += chunkSize {
		end := start + chunkSize
		if end > len(mentions) {
			end = len(mentions)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*8)
		for _, m := range mentions[start:end] {
			if m == nil || m.ID == "" || m.Timestamp.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				m.Timestamp,
				m.ID,
				m.Source,
				m.Author,
				m.Text,
				m.Label,
				m.Score,
				m.Confidence,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, event_id, source, author, text, label, score, confidence) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

// QueryDaily aggregates stored mentions into daily channel shares.
func (s *ClickHouseStorage) QueryDaily(ctx context.Context, from, to time.Time) ([]models.DailyAggregate, error) {
	const qtpl = `
        SELECT
            toDate(ts) AS day,
            100 * countIf(label = 'positive') / count() AS positive,
            100 * countIf(label = 'negative') / count() AS negative,
            100 * countIf(label = 'neutral') / count() AS neutral,
            count() AS volume
        FROM %s
        WHERE ts >= ? AND ts <= ?
        GROUP BY day
        ORDER BY day ASC
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily: %w", err)
	}
	defer rows.Close()

	var out []models.DailyAggregate
	for rows.Next() {
		var d models.DailyAggregate
		if err := rows.Scan(&d.Date, &d.Positive, &d.Negative, &d.Neutral, &d.Volume); err != nil {
			return nil, fmt.Errorf("scan daily: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *ClickHouseStorage) QueryRecent(ctx context.Context, since time.Time, limit int) ([]*models.Mention, error) {
	q := fmt.Sprintf("SELECT ts, event_id, source, author, text, label, score, confidence FROM %s WHERE ts >= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var mentions []*models.Mention
	for rows.Next() {
		var m models.Mention
		if err := rows.Scan(&m.Timestamp, &m.ID, &m.Source, &m.Author, &m.Text, &m.Label, &m.Score, &m.Confidence); err != nil {
			return nil, fmt.Errorf("scan mention: %w", err)
		}
		mentions = append(mentions, &m)
	}
	return mentions, rows.Err()
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, m *models.Mention) error {
	return p.producer.Publish(ctx, p.topic, []byte(m.Source), mentionValue(m))
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, mentions []*models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(mentions))
	for i, m := range mentions {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(m.Source),
			Value: mentionValue(m),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// mentionValue is the wire shape consumed by the ingest handler.
func mentionValue(m *models.Mention) map[string]interface{} {
	return map[string]interface{}{
		"id":     m.ID,
		"source": m.Source,
		"author": m.Author,
		"text":   m.Text,
		"ts":     m.Timestamp.UnixMilli(),
	}
}
