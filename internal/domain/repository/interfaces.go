package repository

import (
	"context"
	"time"

	"SentiCast/internal/domain/models"
)

type MentionStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Mention, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, m *models.Mention) error
	PublishBatch(ctx context.Context, mentions []*models.Mention) error
	Close() error
}

type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, m *models.Mention) error
	StoreBatch(ctx context.Context, mentions []*models.Mention) error
	QueryDaily(ctx context.Context, from, to time.Time) ([]models.DailyAggregate, error)
	QueryRecent(ctx context.Context, since time.Time, limit int) ([]*models.Mention, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// AuditStore records forecast, anomaly and training activity for
// offline review. Metadata only, never model weights.
type AuditStore interface {
	LogForecast(ctx context.Context, r *models.ForecastResult) error
	LogAnomalies(ctx context.Context, records []models.AnomalyRecord) error
	LogTrainingRun(ctx context.Context, report *models.TrainingReport) error
}

type Metrics interface {
	RecordMessageSent(backend, source string)
	RecordError(kind string)
	RecordChannelShare(channel string, pct float64)
	RecordLatency(op string, seconds float64)
}
