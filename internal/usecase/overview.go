package usecase

import (
	"context"
	"sync"
	"time"

	"SentiCast/internal/domain/models"
)

// OverviewUseCase assembles the consolidated analytics snapshot by
// fanning out to the individual sections concurrently.
type OverviewUseCase struct {
	trends   *TrendAggregator
	forecast *ForecastUseCase
	timeout  time.Duration
}

func NewOverviewUseCase(trends *TrendAggregator, forecast *ForecastUseCase) *OverviewUseCase {
	return &OverviewUseCase{trends: trends, forecast: forecast, timeout: 15 * time.Second}
}

type GetOverviewParams struct {
	TrendWindow  int
	ForecastDays int
	AnomalyDays  int
}

func (uc *OverviewUseCase) GetOverview(ctx context.Context, p GetOverviewParams) (*models.OverviewSnapshot, error) {
	if p.TrendWindow <= 0 {
		p.TrendWindow = 7
	}
	if p.ForecastDays <= 0 {
		p.ForecastDays = 7
	}
	if p.AnomalyDays <= 0 {
		p.AnomalyDays = 30
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.OverviewSnapshot{
		GeneratedAt: time.Now().UTC(),
		Errors:      map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.trends.Trends(ctx, p.TrendWindow)
		ch <- item{"trends", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.forecast.Predict(ctx, p.ForecastDays)
		ch <- item{"forecast", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.forecast.Alerts(ctx, p.AnomalyDays)
		ch <- item{"anomalies", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		ch <- item{"model", uc.forecast.ModelInfo(), nil}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "trends":
			res.Trends = it.val.(*models.TrendSummary)
		case "forecast":
			res.Forecast = it.val.(*models.ForecastResult)
		case "anomalies":
			res.Anomalies = it.val.([]models.AnomalyRecord)
		case "model":
			v := it.val.(models.ModelInfo)
			res.Model = &v
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
