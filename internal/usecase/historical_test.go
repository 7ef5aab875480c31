package usecase

import (
	"context"
	"testing"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
)

type windowHistory struct {
	fakeHistory
	from, to time.Time
}

func (f *windowHistory) GetDaily(_ context.Context, from, to time.Time) ([]models.DailyAggregate, error) {
	f.from, f.to = from, to
	return f.days, nil
}

func (f *windowHistory) GetDailyBySource(_ context.Context, _ domrepo.Source, from, to time.Time) ([]models.DailyAggregate, error) {
	f.from, f.to = from, to
	return f.days, nil
}

func TestGetHistoricalDayAlignedWindow(t *testing.T) {
	history := &windowHistory{fakeHistory: fakeHistory{days: seedHistory(7)}}
	uc := NewHistoricalUseCase(history, nil, time.Minute)

	res, err := uc.GetHistorical(context.Background(), GetHistoricalParams{Days: 7})
	if err != nil {
		t.Fatalf("GetHistorical: %v", err)
	}
	if !history.from.Equal(history.from.Truncate(24 * time.Hour)) {
		t.Errorf("from not midnight-aligned: %v", history.from)
	}
	if got := int(history.to.Sub(history.from).Hours() / 24); got != 7 {
		t.Errorf("window spans %d days, want 7", got)
	}
	if res.Count != 7 {
		t.Errorf("count %d", res.Count)
	}
}

func TestGetHistoricalClampsDays(t *testing.T) {
	history := &windowHistory{fakeHistory: fakeHistory{days: seedHistory(3)}}
	uc := NewHistoricalUseCase(history, nil, time.Minute)

	if _, err := uc.GetHistorical(context.Background(), GetHistoricalParams{Days: 5000}); err != nil {
		t.Fatalf("GetHistorical: %v", err)
	}
	want := 365 * 24 * time.Hour
	if got := history.to.Sub(history.from); got != want {
		t.Errorf("window %v, want %v", got, want)
	}
}
