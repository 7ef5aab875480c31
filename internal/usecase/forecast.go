package usecase

import (
	"context"
	"fmt"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
	domsvc "SentiCast/internal/domain/service"
	imetrics "SentiCast/internal/service/metrics"
	applogger "SentiCast/pkg/logger"
)

const defaultHistoryDays = 90

// ForecastUseCase runs the forecast engine over stored history and
// audits the outcomes. The engine itself never touches storage.
type ForecastUseCase struct {
	history     domrepo.HistoryStore
	engine      domsvc.Forecaster
	audit       domrepo.AuditStore
	notifier    domsvc.Notifier
	log         *applogger.Logger
	historyDays int
}

func NewForecastUseCase(
	history domrepo.HistoryStore,
	engine domsvc.Forecaster,
	audit domrepo.AuditStore,
	notifier domsvc.Notifier,
	log *applogger.Logger,
	historyDays int,
) *ForecastUseCase {
	if historyDays <= 0 {
		historyDays = defaultHistoryDays
	}
	return &ForecastUseCase{
		history:     history,
		engine:      engine,
		audit:       audit,
		notifier:    notifier,
		log:         log,
		historyDays: historyDays,
	}
}

// Predict forecasts horizon days of sentiment shares from the trailing
// history window. Horizon bounds are enforced by request validation.
func (uc *ForecastUseCase) Predict(ctx context.Context, horizon int) (*models.ForecastResult, error) {
	history, err := uc.history.GetLastNDays(ctx, uc.historyDays)
	if err != nil {
		imetrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load history: %w", err)
	}

	res, err := uc.engine.Predict(ctx, history, horizon)
	if err != nil {
		imetrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	imetrics.ForecastRequests.WithLabelValues("ok").Inc()

	// Audit logging is best-effort; a write failure never fails the request.
	if uc.audit != nil {
		if aerr := uc.audit.LogForecast(ctx, res); aerr != nil {
			uc.log.Warn("forecast audit write failed", applogger.Error(aerr))
		}
	}
	return res, nil
}

// Alerts scans the trailing days of history for anomalous days,
// audits them and pushes high-severity ones to the notifier.
func (uc *ForecastUseCase) Alerts(ctx context.Context, days int) ([]models.AnomalyRecord, error) {
	if days <= 0 {
		days = 30
	}
	history, err := uc.history.GetLastNDays(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	records := uc.engine.DetectAnomalies(history)
	for _, r := range records {
		imetrics.AnomaliesDetected.WithLabelValues(r.Severity).Inc()
	}

	if uc.audit != nil && len(records) > 0 {
		if aerr := uc.audit.LogAnomalies(ctx, records); aerr != nil {
			uc.log.Warn("anomaly audit write failed", applogger.Error(aerr))
		}
	}
	if uc.notifier != nil && len(records) > 0 {
		if nerr := uc.notifier.NotifyAnomalies(ctx, records); nerr != nil {
			uc.log.Warn("anomaly notify failed", applogger.Error(nerr))
		}
	}
	return records, nil
}

// ModelInfo exposes the engine state for the admin endpoint.
func (uc *ForecastUseCase) ModelInfo() models.ModelInfo {
	return uc.engine.Info()
}
