package usecase

import (
	"context"
	"fmt"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	imetrics "SentiCast/internal/service/metrics"
	pkgcache "SentiCast/pkg/cache"
	"SentiCast/pkg/util"
)

// HistoricalUseCase provides business logic for retrieving daily
// sentiment aggregates.
type HistoricalUseCase struct {
	store domrepo.HistoryStore
	cache pkgcache.Service
	ttl   time.Duration
}

func NewHistoricalUseCase(store domrepo.HistoryStore, cache pkgcache.Service, ttl time.Duration) *HistoricalUseCase {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &HistoricalUseCase{store: store, cache: cache, ttl: ttl}
}

type GetHistoricalParams struct {
	Days   int
	Source string // empty for all sources
}

type GetHistoricalResult struct {
	From   time.Time
	To     time.Time
	Source string
	Count  int
	Days   []models.DailyAggregate
}

func (uc *HistoricalUseCase) GetHistorical(ctx context.Context, p GetHistoricalParams) (*GetHistoricalResult, error) {
	if p.Days <= 0 {
		p.Days = 30
	}
	p.Days = util.ClampInt(p.Days, 1, 365)

	key := pkgcache.GenerateKeyWithParams("historical", p.Source, p.Days)
	if uc.cache != nil {
		var cached GetHistoricalResult
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			imetrics.CacheHits.WithLabelValues("historical").Inc()
			return &cached, nil
		}
		imetrics.CacheMisses.WithLabelValues("historical").Inc()
	}

	// Day-aligned boundaries so equal Days values hit the same rows
	// (and the same cache entries) for the whole day.
	from, to := util.DayRange(time.Now(), p.Days)

	var (
		days []models.DailyAggregate
		err  error
	)
	if p.Source == "" {
		days, err = uc.store.GetDaily(ctx, from, to)
	} else {
		days, err = uc.store.GetDailyBySource(ctx, domrepo.NormalizeSource(p.Source), from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("get historical: %w", err)
	}

	res := &GetHistoricalResult{
		From:   from,
		To:     to,
		Source: p.Source,
		Count:  len(days),
		Days:   days,
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, res, uc.ttl)
	}
	return res, nil
}
