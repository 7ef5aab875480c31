package usecase

import (
	"context"
	"fmt"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	imetrics "SentiCast/internal/service/metrics"
	"SentiCast/internal/services/features"
	pkgcache "SentiCast/pkg/cache"
)

// TrendAggregator derives current-distribution views from stored
// history and recent raw mentions.
type TrendAggregator struct {
	history domrepo.HistoryStore
	storage domrepo.Storage
	cache   pkgcache.Service
	metrics domrepo.Metrics
	ttl     time.Duration
}

func NewTrendAggregator(history domrepo.HistoryStore, storage domrepo.Storage, cache pkgcache.Service, metrics domrepo.Metrics, ttl time.Duration) *TrendAggregator {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &TrendAggregator{history: history, storage: storage, cache: cache, metrics: metrics, ttl: ttl}
}

// Trends summarizes the trailing window days against the window before
// it: current shares, deltas, volatility, dominant channel, volume.
func (a *TrendAggregator) Trends(ctx context.Context, window int) (*models.TrendSummary, error) {
	if window < 2 {
		window = 7
	}

	key := pkgcache.GenerateKeyWithParams("trends", window)
	if a.cache != nil {
		var cached models.TrendSummary
		if err := a.cache.Get(ctx, key, &cached); err == nil {
			imetrics.CacheHits.WithLabelValues("trends").Inc()
			return &cached, nil
		}
		imetrics.CacheMisses.WithLabelValues("trends").Inc()
	}

	// Two windows of history: current plus the previous one for deltas.
	history, err := a.history.GetLastNDays(ctx, window*2)
	if err != nil {
		return nil, fmt.Errorf("trends history: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("trends: no history available")
	}

	pos, neg, neu := features.WindowMeans(history, window)
	if a.metrics != nil {
		a.metrics.RecordChannelShare("positive", pos)
		a.metrics.RecordChannelShare("negative", neg)
		a.metrics.RecordChannelShare("neutral", neu)
	}
	res := &models.TrendSummary{
		AsOf:       time.Now().UTC(),
		WindowDays: window,
		Positive:   pos,
		Negative:   neg,
		Neutral:    neu,
		Dominant:   features.Dominant(pos, neg, neu),
		Volume:     features.TotalVolume(history, window),
		Deltas:     features.Deltas(history, window),
		Volatility: features.Volatility(history, window),
	}
	if a.cache != nil {
		_ = a.cache.Set(ctx, key, res, a.ttl)
	}
	return res, nil
}

// Realtime aggregates mentions from the last few minutes.
func (a *TrendAggregator) Realtime(ctx context.Context, minutes int) (*models.RealtimeSummary, error) {
	if minutes <= 0 {
		minutes = 60
	}
	to := time.Now().UTC()
	from := to.Add(-time.Duration(minutes) * time.Minute)

	mentions, err := a.storage.QueryRecent(ctx, from, 10000)
	if err != nil {
		return nil, fmt.Errorf("realtime mentions: %w", err)
	}
	res := features.SummarizeMentions(mentions, from, to)
	return &res, nil
}
