package models

import "time"

// Trend labels summarizing a forecast horizon.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Anomaly severity labels.
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// ForecastPoint is a single forecast day. Channel scores sum to 100
// within rounding tolerance; bounds bracket the positive score.
type ForecastPoint struct {
	Date       time.Time
	Positive   float64
	Negative   float64
	Neutral    float64
	Confidence float64
	Dominant   string
	Lower      float64
	Upper      float64
}

// ModelInfo describes the model state behind a forecast.
type ModelInfo struct {
	Type         string // "ensemble" when seasonal contributes, "sequence" otherwise
	Trained      bool
	TrainedAt    time.Time
	Accuracy     float64
	TrainingRuns int64
	Degraded     string // non-empty when the seasonal capability is absent
}

// ForecastResult is the full output of a predict call.
type ForecastResult struct {
	Points        []ForecastPoint
	Trend         string
	AvgConfidence float64
	Model         ModelInfo
	GeneratedAt   time.Time
}

// AnomalyRecord flags one day whose channel share deviates from its
// trailing window.
type AnomalyRecord struct {
	Date      time.Time
	Channel   string
	Observed  float64
	Expected  float64 // trailing window mean
	Deviation float64 // sigma units
	Severity  string
}

// TrainingReport summarizes one completed training pass.
type TrainingReport struct {
	StartedAt  time.Time
	Duration   time.Duration
	DataPoints int
	Accuracy   float64
	Trigger    string // "lazy", "manual"
}
