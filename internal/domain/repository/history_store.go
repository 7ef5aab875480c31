package repository

import (
	"context"
	"time"

	"SentiCast/internal/domain/models"
)

// Source identifies a social mention origin.
type Source string

const (
	SourceTwitter Source = "twitter"
	SourceReddit  Source = "reddit"
	SourceNews    Source = "news"
	SourceForums  Source = "forums"
)

// HistoryStore provides read-only access to daily sentiment history for
// forecasting and analytics.
type HistoryStore interface {
	GetDaily(ctx context.Context, from, to time.Time) ([]models.DailyAggregate, error)
	GetDailyBySource(ctx context.Context, source Source, from, to time.Time) ([]models.DailyAggregate, error)
	GetLastNDays(ctx context.Context, n int) ([]models.DailyAggregate, error)
}
