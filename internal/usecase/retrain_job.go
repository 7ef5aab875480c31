package usecase

import (
	"context"
	"fmt"

	domrepo "SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	imetrics "SentiCast/internal/service/metrics"
	pkgcache "SentiCast/pkg/cache"
	applogger "SentiCast/pkg/logger"
	"SentiCast/pkg/queue"
)

// RetrainPayload is the queued retrain request.
type RetrainPayload struct {
	Days        int    `json:"days"`
	RequestedAt string `json:"requested_at,omitempty"`
}

// RetrainJob rebuilds the engine state from fresh history. It runs on
// the redis queue workers so the admin endpoint can return immediately.
type RetrainJob struct {
	history     domrepo.HistoryStore
	engine      domsvc.Forecaster
	audit       domrepo.AuditStore
	cache       pkgcache.Service
	log         *applogger.Logger
	defaultDays int
}

func NewRetrainJob(history domrepo.HistoryStore, engine domsvc.Forecaster, audit domrepo.AuditStore, cache pkgcache.Service, log *applogger.Logger, defaultDays int) *RetrainJob {
	if defaultDays <= 0 {
		defaultDays = defaultHistoryDays
	}
	return &RetrainJob{history: history, engine: engine, audit: audit, cache: cache, log: log, defaultDays: defaultDays}
}

func (j *RetrainJob) Name() string { return "retrain" }
func (j *RetrainJob) Type() string { return "retrain" }

// Handle fetches the requested window of history, retrains the engine
// and records the training run.
func (j *RetrainJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RetrainPayload](payload)
	if err != nil {
		return fmt.Errorf("retrain payload: %w", err)
	}
	days := p.Days
	if days <= 0 {
		days = j.defaultDays
	}

	history, err := j.history.GetLastNDays(ctx, days)
	if err != nil {
		return fmt.Errorf("retrain history: %w", err)
	}

	report, err := j.engine.Retrain(ctx, history)
	if err != nil {
		imetrics.TrainingRuns.WithLabelValues("manual_failed").Inc()
		return fmt.Errorf("retrain: %w", err)
	}
	imetrics.TrainingRuns.WithLabelValues(report.Trigger).Inc()

	if j.audit != nil {
		if aerr := j.audit.LogTrainingRun(ctx, report); aerr != nil {
			j.log.Warn("training audit write failed", applogger.Error(aerr))
		}
	}

	// Cached responses describe the old model; drop them.
	if j.cache != nil {
		if cerr := j.cache.DeleteByPattern(ctx, pkgcache.BuildPattern("resp:")); cerr != nil {
			j.log.Warn("response cache invalidation failed", applogger.Error(cerr))
		}
	}
	j.log.Info("retrain complete",
		applogger.Int("data_points", report.DataPoints),
		applogger.Float64("accuracy", report.Accuracy),
		applogger.Duration("took", report.Duration),
	)
	return nil
}

var _ queue.Job = (*RetrainJob)(nil)
