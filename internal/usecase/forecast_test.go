package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	applogger "SentiCast/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func seedHistory(n int) []models.DailyAggregate {
	out := make([]models.DailyAggregate, n)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = models.DailyAggregate{
			Date:     start.AddDate(0, 0, i),
			Positive: 50 + float64(i%5),
			Negative: 25 - float64(i%3),
			Neutral:  25,
			Volume:   int64(100 + i),
		}
	}
	return out
}

type fakeHistory struct {
	days []models.DailyAggregate
	err  error
	last int
}

func (f *fakeHistory) GetDaily(_ context.Context, _, _ time.Time) ([]models.DailyAggregate, error) {
	return f.days, f.err
}

func (f *fakeHistory) GetDailyBySource(_ context.Context, _ domrepo.Source, _, _ time.Time) ([]models.DailyAggregate, error) {
	return f.days, f.err
}

func (f *fakeHistory) GetLastNDays(_ context.Context, n int) ([]models.DailyAggregate, error) {
	f.last = n
	if f.err != nil {
		return nil, f.err
	}
	if n > len(f.days) {
		n = len(f.days)
	}
	return f.days[len(f.days)-n:], nil
}

type fakeEngine struct {
	result    *models.ForecastResult
	err       error
	anomalies []models.AnomalyRecord
	report    *models.TrainingReport
	retrains  int
}

func (f *fakeEngine) Predict(_ context.Context, _ []models.DailyAggregate, _ int) (*models.ForecastResult, error) {
	return f.result, f.err
}

func (f *fakeEngine) Retrain(_ context.Context, _ []models.DailyAggregate) (*models.TrainingReport, error) {
	f.retrains++
	if f.report == nil {
		return nil, errors.New("no report")
	}
	return f.report, nil
}

func (f *fakeEngine) DetectAnomalies(_ []models.DailyAggregate) []models.AnomalyRecord {
	return f.anomalies
}

func (f *fakeEngine) Accuracy() float64 { return 0.8 }

func (f *fakeEngine) TrainingRuns() int64 { return 1 }

func (f *fakeEngine) Info() models.ModelInfo {
	return models.ModelInfo{Type: "ensemble", Trained: true, Accuracy: 0.8}
}

type fakeAudit struct {
	forecasts int
	anomalies int
	trainings int
}

func (f *fakeAudit) LogForecast(context.Context, *models.ForecastResult) error {
	f.forecasts++
	return nil
}

func (f *fakeAudit) LogAnomalies(_ context.Context, records []models.AnomalyRecord) error {
	f.anomalies += len(records)
	return nil
}

func (f *fakeAudit) LogTrainingRun(context.Context, *models.TrainingReport) error {
	f.trainings++
	return nil
}

type fakeNotifier struct {
	notified int
}

func (f *fakeNotifier) NotifyAnomalies(_ context.Context, records []models.AnomalyRecord) error {
	f.notified += len(records)
	return nil
}

func TestPredictAuditsResult(t *testing.T) {
	engine := &fakeEngine{result: &models.ForecastResult{
		Trend:         models.TrendStable,
		AvgConfidence: 0.7,
	}}
	audit := &fakeAudit{}
	uc := NewForecastUseCase(&fakeHistory{days: seedHistory(30)}, engine, audit, nil, testLogger(t), 90)

	res, err := uc.Predict(context.Background(), 7)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if res.Trend != models.TrendStable {
		t.Errorf("trend = %q, want %q", res.Trend, models.TrendStable)
	}
	if audit.forecasts != 1 {
		t.Errorf("audited forecasts = %d, want 1", audit.forecasts)
	}
}

func TestPredictHistoryError(t *testing.T) {
	uc := NewForecastUseCase(&fakeHistory{err: errors.New("ch down")}, &fakeEngine{}, nil, nil, testLogger(t), 90)
	if _, err := uc.Predict(context.Background(), 7); err == nil {
		t.Fatal("expected error when history load fails")
	}
}

func TestAlertsAuditsAndNotifies(t *testing.T) {
	records := []models.AnomalyRecord{
		{Channel: models.ChannelNegative, Deviation: 2.4, Severity: models.SeverityMedium},
		{Channel: models.ChannelNegative, Deviation: 3.6, Severity: models.SeverityHigh},
	}
	audit := &fakeAudit{}
	notifier := &fakeNotifier{}
	uc := NewForecastUseCase(&fakeHistory{days: seedHistory(30)}, &fakeEngine{anomalies: records}, audit, notifier, testLogger(t), 90)

	got, err := uc.Alerts(context.Background(), 30)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if audit.anomalies != 2 {
		t.Errorf("audited anomalies = %d, want 2", audit.anomalies)
	}
	if notifier.notified != 2 {
		t.Errorf("notified = %d, want 2", notifier.notified)
	}
}

func TestAlertsEmptySkipsSideEffects(t *testing.T) {
	audit := &fakeAudit{}
	notifier := &fakeNotifier{}
	uc := NewForecastUseCase(&fakeHistory{days: seedHistory(30)}, &fakeEngine{}, audit, notifier, testLogger(t), 90)

	got, err := uc.Alerts(context.Background(), 30)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("records = %d, want 0", len(got))
	}
	if audit.anomalies != 0 || notifier.notified != 0 {
		t.Error("no audit or notify expected for an empty scan")
	}
}
