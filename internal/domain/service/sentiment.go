package service

import (
	"context"

	"SentiCast/internal/domain/models"
)

// Analyzer classifies free text into sentiment channels.
type Analyzer interface {
	Analyze(text string) models.SentimentScore
	AnalyzeBatch(texts []string) []models.SentimentScore
}

// Scrubber removes personally identifiable information from free text,
// returning the clean text and the kinds of PII it replaced. HashAuthor
// pseudonymizes author handles before storage.
type Scrubber interface {
	Scrub(text string) (string, []string)
	HashAuthor(author string) string
}

// Forecaster produces sentiment forecasts over daily history.
type Forecaster interface {
	Predict(ctx context.Context, history []models.DailyAggregate, horizon int) (*models.ForecastResult, error)
	Retrain(ctx context.Context, history []models.DailyAggregate) (*models.TrainingReport, error)
	DetectAnomalies(history []models.DailyAggregate) []models.AnomalyRecord
	Accuracy() float64
	TrainingRuns() int64
	Info() models.ModelInfo
}

// Notifier delivers high-severity anomaly alerts to an external sink.
type Notifier interface {
	NotifyAnomalies(ctx context.Context, records []models.AnomalyRecord) error
}
