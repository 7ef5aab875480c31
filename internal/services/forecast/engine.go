package forecast

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"SentiCast/internal/domain/models"
	applogger "SentiCast/pkg/logger"
)

// State is the engine lifecycle phase, observable without locking.
type State int32

const (
	StateUntrained State = iota
	StateTraining
	StateTrained
)

func (s State) String() string {
	switch s {
	case StateTraining:
		return "training"
	case StateTrained:
		return "trained"
	default:
		return "untrained"
	}
}

const defaultMaxHorizon = 30

// Config holds the engine tunables. Zero values fall back to the
// production defaults.
type Config struct {
	Sequence       SequenceConfig
	SeasonalPeriod int
	MaxHorizon     int
}

// Engine orchestrates normalization, the recurrent and seasonal models,
// ensemble combination and anomaly detection behind one facade. One
// instance owns its trained state; retrain replaces it wholesale and a
// failed retrain leaves the previous state intact.
type Engine struct {
	cfg Config
	log *applogger.Logger

	state        atomic.Int32
	trainingRuns atomic.Int64

	mu        sync.RWMutex
	scaler    *Normalizer
	seq       *SequenceForecaster
	seasonal  *SeasonalForecaster // nil when the capability is degraded
	degraded  string
	accuracy  float64
	trainedAt time.Time

	anomalies *AnomalyDetector
}

func NewEngine(cfg Config, log *applogger.Logger) *Engine {
	cfg.Sequence.normalize()
	if cfg.SeasonalPeriod <= 1 {
		cfg.SeasonalPeriod = DefaultSeasonalPeriod
	}
	if cfg.MaxHorizon <= 0 {
		cfg.MaxHorizon = defaultMaxHorizon
	}
	return &Engine{cfg: cfg, log: log, anomalies: NewAnomalyDetector()}
}

// MinHistory is the smallest history Predict or Retrain accepts.
func (e *Engine) MinHistory() int { return e.cfg.Sequence.SeqLen + minTrainExtra }

// State returns the lifecycle phase without taking the model lock.
func (e *Engine) State() State { return State(e.state.Load()) }

// TrainingRuns counts completed training passes.
func (e *Engine) TrainingRuns() int64 { return e.trainingRuns.Load() }

// Accuracy returns the accuracy recorded by the last training pass.
// Predict never changes it.
func (e *Engine) Accuracy() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.accuracy
}

// Info describes the current model state.
func (e *Engine) Info() models.ModelInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.infoLocked()
}

func (e *Engine) infoLocked() models.ModelInfo {
	typ := "sequence"
	if e.seasonal != nil {
		typ = "ensemble"
	}
	return models.ModelInfo{
		Type:         typ,
		Trained:      e.State() == StateTrained,
		TrainedAt:    e.trainedAt,
		Accuracy:     e.accuracy,
		TrainingRuns: e.trainingRuns.Load(),
		Degraded:     e.degraded,
	}
}

func (e *Engine) guard(history []models.DailyAggregate) error {
	if len(history) < e.MinHistory() {
		return &InsufficientDataError{Required: e.MinHistory(), Supplied: len(history)}
	}
	return nil
}

// Predict forecasts horizon days past the end of history, training
// lazily on the first call. The supplied history is never mutated.
func (e *Engine) Predict(ctx context.Context, history []models.DailyAggregate, horizon int) (*models.ForecastResult, error) {
	if horizon < 1 || horizon > e.cfg.MaxHorizon {
		return nil, fmt.Errorf("horizon %d out of range 1..%d", horizon, e.cfg.MaxHorizon)
	}
	if err := e.guard(history); err != nil {
		return nil, err
	}
	if err := e.ensureTrained(history); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	// seed the rollout with the tail of the supplied history, normalized
	// with the bounds stored at train time
	seqLen := e.cfg.Sequence.SeqLen
	seed := make([][numChannels]float64, 0, seqLen)
	for _, d := range history[len(history)-seqLen:] {
		seed = append(seed, e.scaler.Transform(d.Channels()))
	}
	normOut, err := e.seq.Roll(seed, horizon)
	if err != nil {
		return nil, fmt.Errorf("sequence rollout: %w", err)
	}

	var seasPt, seasLo, seasHi [][numChannels]float64
	if e.seasonal != nil {
		seasPt, seasLo, seasHi = e.seasonal.Forecast(horizon)
	}

	lastDate := history[len(history)-1].Date
	points := make([]models.ForecastPoint, horizon)
	confSum := 0.0
	for i := 0; i < horizon; i++ {
		seqPct := e.scaler.Inverse(normOut[i])
		var pt models.ForecastPoint
		if e.seasonal != nil {
			pt = combineDay(i, seqPct, &seasPt[i], &seasLo[i], &seasHi[i])
		} else {
			pt = combineDay(i, seqPct, nil, nil, nil)
		}
		pt.Date = lastDate.AddDate(0, 0, i+1)
		points[i] = pt
		confSum += pt.Confidence
	}

	return &models.ForecastResult{
		Points:        points,
		Trend:         trendLabel(points),
		AvgConfidence: confSum / float64(horizon),
		Model:         e.infoLocked(),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

// Retrain builds a fresh trained state from history and swaps it in.
func (e *Engine) Retrain(ctx context.Context, history []models.DailyAggregate) (*models.TrainingReport, error) {
	if err := e.guard(history); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trainLocked(history, "manual")
}

// DetectAnomalies scans history for channel shares deviating from their
// trailing week. Requires no training.
func (e *Engine) DetectAnomalies(history []models.DailyAggregate) []models.AnomalyRecord {
	return e.anomalies.Detect(history)
}

// ensureTrained performs the single-flight lazy training pass.
// Concurrent first predicts serialize on the write lock; the losers
// observe the trained state on the double check and return immediately.
func (e *Engine) ensureTrained(history []models.DailyAggregate) error {
	if e.State() == StateTrained {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.State() == StateTrained {
		return nil
	}
	_, err := e.trainLocked(history, "lazy")
	return err
}

// trainLocked trains a complete replacement state. The caller holds the
// write lock. On failure the previous fields and phase are kept.
func (e *Engine) trainLocked(history []models.DailyAggregate, trigger string) (*models.TrainingReport, error) {
	prev := e.State()
	e.state.Store(int32(StateTraining))
	start := time.Now()

	raw := make([][numChannels]float64, len(history))
	for i, d := range history {
		raw[i] = d.Channels()
	}

	scaler := &Normalizer{}
	norm := scaler.FitTransform(raw)

	seq := NewSequenceForecaster(e.cfg.Sequence)
	acc, err := seq.Fit(norm, scaler)
	if err != nil {
		e.state.Store(int32(prev))
		return nil, fmt.Errorf("train sequence model: %w", err)
	}

	seasonal, serr := FitSeasonalChannels(raw, e.cfg.SeasonalPeriod)
	degraded := ""
	if serr != nil {
		seasonal = nil
		degraded = serr.Error()
		if e.log != nil {
			e.log.Warn("seasonal capability degraded", applogger.Error(serr))
		}
	}

	e.scaler = scaler
	e.seq = seq
	e.seasonal = seasonal
	e.degraded = degraded
	e.accuracy = acc
	e.trainedAt = time.Now().UTC()
	e.state.Store(int32(StateTrained))
	runs := e.trainingRuns.Add(1)

	if e.log != nil {
		e.log.Info("training pass complete",
			applogger.String("trigger", trigger),
			applogger.Int("data_points", len(history)),
			applogger.Float64("accuracy", acc),
			applogger.Int64("runs", runs),
			applogger.Duration("took", time.Since(start)),
		)
	}
	return &models.TrainingReport{
		StartedAt:  start.UTC(),
		Duration:   time.Since(start),
		DataPoints: len(history),
		Accuracy:   acc,
		Trigger:    trigger,
	}, nil
}
