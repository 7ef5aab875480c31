package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	pkgch "SentiCast/pkg/clickhouse"
)

// CHAuditStore persists forecast, anomaly and training activity to
// ClickHouse. Metadata only, never model weights. Tables live in the
// configured database, matching the schema created at startup.
type CHAuditStore struct {
	db            *sql.DB
	forecastTable string
	anomalyTable  string
	trainingTable string
}

func NewCHAuditStore(ch *pkgch.Client, database string) domrepo.AuditStore {
	return &CHAuditStore{
		db:            ch.DB(),
		forecastTable: qualifiedTable(database, "forecast_log"),
		anomalyTable:  qualifiedTable(database, "anomaly_log"),
		trainingTable: qualifiedTable(database, "training_runs"),
	}
}

// qualifiedTable prefixes a table with the configured database so the
// stores query the same tables the startup schema creates.
func qualifiedTable(database, table string) string {
	if database == "" {
		database = "senticast"
	}
	return database + "." + table
}

func (s *CHAuditStore) LogForecast(ctx context.Context, r *models.ForecastResult) error {
	if r == nil {
		return nil
	}
	q := `
        INSERT INTO ` + s.forecastTable + `
            (generated_at, horizon, trend, avg_confidence, model_type, model_accuracy)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, q,
		r.GeneratedAt,
		len(r.Points),
		r.Trend,
		r.AvgConfidence,
		r.Model.Type,
		r.Model.Accuracy,
	)
	if err != nil {
		return fmt.Errorf("log forecast: %w", err)
	}
	return nil
}

func (s *CHAuditStore) LogAnomalies(ctx context.Context, records []models.AnomalyRecord) error {
	if len(records) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO " + s.anomalyTable +
		" (date, channel, observed, expected, deviation, severity) VALUES ")

	args := make([]interface{}, 0, len(records)*6)
	for i, rec := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args,
			rec.Date,
			rec.Channel,
			rec.Observed,
			rec.Expected,
			rec.Deviation,
			rec.Severity,
		)
	}
	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("log anomalies: %w", err)
	}
	return nil
}

func (s *CHAuditStore) LogTrainingRun(ctx context.Context, report *models.TrainingReport) error {
	if report == nil {
		return nil
	}
	q := `
        INSERT INTO ` + s.trainingTable + `
            (started_at, duration_ms, data_points, accuracy, trigger)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, q,
		report.StartedAt,
		report.Duration.Milliseconds(),
		report.DataPoints,
		report.Accuracy,
		report.Trigger,
	)
	if err != nil {
		return fmt.Errorf("log training run: %w", err)
	}
	return nil
}
