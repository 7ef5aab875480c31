package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
)

type fakeStorage struct {
	recent []*models.Mention
}

func (f *fakeStorage) Init(context.Context) error { return nil }

func (f *fakeStorage) Store(context.Context, *models.Mention) error { return nil }
func (f *fakeStorage) StoreBatch(context.Context, []*models.Mention) error {
	return nil
}

func (f *fakeStorage) QueryDaily(context.Context, time.Time, time.Time) ([]models.DailyAggregate, error) {
	return nil, nil
}

func (f *fakeStorage) QueryRecent(context.Context, time.Time, int) ([]*models.Mention, error) {
	return f.recent, nil
}

func (f *fakeStorage) Health(context.Context) error { return nil }

func (f *fakeStorage) Close() error { return nil }

func TestGetOverviewAllSections(t *testing.T) {
	history := &fakeHistory{days: seedHistory(30)}
	engine := &fakeEngine{result: &models.ForecastResult{Trend: models.TrendImproving}}
	fc := NewForecastUseCase(history, engine, nil, nil, testLogger(t), 90)
	trends := NewTrendAggregator(history, &fakeStorage{}, nil, noopMetrics{}, time.Minute)

	uc := NewOverviewUseCase(trends, fc)
	snap, err := uc.GetOverview(context.Background(), GetOverviewParams{})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if snap.Errors != nil {
		t.Fatalf("unexpected section errors: %v", snap.Errors)
	}
	if snap.Trends == nil || snap.Trends.WindowDays != 7 {
		t.Errorf("trends section missing or wrong window: %+v", snap.Trends)
	}
	if snap.Forecast == nil || snap.Forecast.Trend != models.TrendImproving {
		t.Errorf("forecast section missing or wrong trend: %+v", snap.Forecast)
	}
	if snap.Model == nil || !snap.Model.Trained {
		t.Errorf("model section missing or untrained: %+v", snap.Model)
	}
	if snap.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestGetOverviewPartialFailure(t *testing.T) {
	history := &fakeHistory{days: seedHistory(30)}
	engine := &fakeEngine{err: errors.New("model exploded")}
	fc := NewForecastUseCase(history, engine, nil, nil, testLogger(t), 90)
	trends := NewTrendAggregator(history, &fakeStorage{}, nil, noopMetrics{}, time.Minute)

	uc := NewOverviewUseCase(trends, fc)
	snap, err := uc.GetOverview(context.Background(), GetOverviewParams{TrendWindow: 5})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if snap.Errors == nil || snap.Errors["forecast"] == "" {
		t.Fatalf("expected forecast section error, got %v", snap.Errors)
	}
	if snap.Forecast != nil {
		t.Error("failed section should stay nil")
	}
	// The other sections must still be served.
	if snap.Trends == nil || snap.Trends.WindowDays != 5 {
		t.Errorf("trends section missing despite forecast failure: %+v", snap.Trends)
	}
	if snap.Model == nil {
		t.Error("model section missing despite forecast failure")
	}
}
