package api

import (
	"time"

	"SentiCast/internal/domain/models"
	"SentiCast/internal/usecase"
)

// Wire shapes for the REST surface. Domain models stay transport-free;
// everything leaving the process goes through these.

type forecastPointDTO struct {
	Date       string  `json:"date"`
	Positive   float64 `json:"positive_score"`
	Negative   float64 `json:"negative_score"`
	Neutral    float64 `json:"neutral_score"`
	Confidence float64 `json:"confidence"`
	Dominant   string  `json:"dominant_sentiment"`
	Lower      float64 `json:"lower_bound"`
	Upper      float64 `json:"upper_bound"`
}

type modelInfoDTO struct {
	Type         string  `json:"type"`
	Trained      bool    `json:"trained"`
	TrainedAt    string  `json:"trained_at,omitempty"`
	Accuracy     float64 `json:"accuracy"`
	TrainingRuns int64   `json:"training_runs"`
	Degraded     string  `json:"degraded,omitempty"`
}

type forecastDTO struct {
	Predictions   []forecastPointDTO `json:"predictions"`
	Trend         string             `json:"trend"`
	AvgConfidence float64            `json:"avg_confidence"`
	Model         modelInfoDTO       `json:"model_info"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

type anomalyDTO struct {
	Date      string  `json:"date"`
	Channel   string  `json:"channel"`
	Observed  float64 `json:"observed_value"`
	Expected  float64 `json:"expected_value"`
	Deviation float64 `json:"deviation"`
	Severity  string  `json:"severity"`
}

type dailyDTO struct {
	Date     string  `json:"date"`
	Positive float64 `json:"positive_pct"`
	Negative float64 `json:"negative_pct"`
	Neutral  float64 `json:"neutral_pct"`
	Volume   int64   `json:"total_mentions"`
}

type historicalDTO struct {
	From   string     `json:"from"`
	To     string     `json:"to"`
	Source string     `json:"source,omitempty"`
	Count  int        `json:"count"`
	Days   []dailyDTO `json:"days"`
}

type trendsDTO struct {
	AsOf       time.Time          `json:"as_of"`
	WindowDays int                `json:"window_days"`
	Positive   float64            `json:"positive_pct"`
	Negative   float64            `json:"negative_pct"`
	Neutral    float64            `json:"neutral_pct"`
	Dominant   string             `json:"dominant_sentiment"`
	Volume     int64              `json:"total_mentions"`
	Deltas     map[string]float64 `json:"deltas"`
	Volatility map[string]float64 `json:"volatility"`
}

type realtimeDTO struct {
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Total    int            `json:"total"`
	ByLabel  map[string]int `json:"by_label"`
	BySource map[string]int `json:"by_source"`
	Positive float64        `json:"positive_pct"`
	Negative float64        `json:"negative_pct"`
	Neutral  float64        `json:"neutral_pct"`
}

type overviewDTO struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Trends      *trendsDTO        `json:"trends,omitempty"`
	Forecast    *forecastDTO      `json:"forecast,omitempty"`
	Anomalies   []anomalyDTO      `json:"anomalies,omitempty"`
	Model       *modelInfoDTO     `json:"model,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

type analyzeDTO struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

const dayFormat = "2006-01-02"

func toModelInfoDTO(m models.ModelInfo) modelInfoDTO {
	dto := modelInfoDTO{
		Type:         m.Type,
		Trained:      m.Trained,
		Accuracy:     m.Accuracy,
		TrainingRuns: m.TrainingRuns,
		Degraded:     m.Degraded,
	}
	if !m.TrainedAt.IsZero() {
		dto.TrainedAt = m.TrainedAt.Format(time.RFC3339)
	}
	return dto
}

func toForecastDTO(r *models.ForecastResult) *forecastDTO {
	if r == nil {
		return nil
	}
	pts := make([]forecastPointDTO, len(r.Points))
	for i, p := range r.Points {
		pts[i] = forecastPointDTO{
			Date:       p.Date.Format(dayFormat),
			Positive:   p.Positive,
			Negative:   p.Negative,
			Neutral:    p.Neutral,
			Confidence: p.Confidence,
			Dominant:   p.Dominant,
			Lower:      p.Lower,
			Upper:      p.Upper,
		}
	}
	return &forecastDTO{
		Predictions:   pts,
		Trend:         r.Trend,
		AvgConfidence: r.AvgConfidence,
		Model:         toModelInfoDTO(r.Model),
		GeneratedAt:   r.GeneratedAt,
	}
}

func toAnomalyDTOs(records []models.AnomalyRecord) []anomalyDTO {
	out := make([]anomalyDTO, len(records))
	for i, r := range records {
		out[i] = anomalyDTO{
			Date:      r.Date.Format(dayFormat),
			Channel:   r.Channel,
			Observed:  r.Observed,
			Expected:  r.Expected,
			Deviation: r.Deviation,
			Severity:  r.Severity,
		}
	}
	return out
}

func toHistoricalDTO(r *usecase.GetHistoricalResult) *historicalDTO {
	days := make([]dailyDTO, len(r.Days))
	for i, d := range r.Days {
		days[i] = dailyDTO{
			Date:     d.Date.Format(dayFormat),
			Positive: d.Positive,
			Negative: d.Negative,
			Neutral:  d.Neutral,
			Volume:   d.Volume,
		}
	}
	return &historicalDTO{
		From:   r.From.Format(dayFormat),
		To:     r.To.Format(dayFormat),
		Source: r.Source,
		Count:  r.Count,
		Days:   days,
	}
}

func toTrendsDTO(t *models.TrendSummary) *trendsDTO {
	if t == nil {
		return nil
	}
	return &trendsDTO{
		AsOf:       t.AsOf,
		WindowDays: t.WindowDays,
		Positive:   t.Positive,
		Negative:   t.Negative,
		Neutral:    t.Neutral,
		Dominant:   t.Dominant,
		Volume:     t.Volume,
		Deltas: map[string]float64{
			models.ChannelPositive: t.Deltas.Positive,
			models.ChannelNegative: t.Deltas.Negative,
			models.ChannelNeutral:  t.Deltas.Neutral,
		},
		Volatility: map[string]float64{
			models.ChannelPositive: t.Volatility.Positive,
			models.ChannelNegative: t.Volatility.Negative,
			models.ChannelNeutral:  t.Volatility.Neutral,
		},
	}
}

func toRealtimeDTO(r *models.RealtimeSummary) *realtimeDTO {
	return &realtimeDTO{
		From:     r.From,
		To:       r.To,
		Total:    r.Total,
		ByLabel:  r.ByLabel,
		BySource: r.BySource,
		Positive: r.Positive,
		Negative: r.Negative,
		Neutral:  r.Neutral,
	}
}

func toOverviewDTO(o *models.OverviewSnapshot) *overviewDTO {
	dto := &overviewDTO{
		GeneratedAt: o.GeneratedAt,
		Trends:      toTrendsDTO(o.Trends),
		Forecast:    toForecastDTO(o.Forecast),
		Errors:      o.Errors,
	}
	if o.Anomalies != nil {
		dto.Anomalies = toAnomalyDTOs(o.Anomalies)
	}
	if o.Model != nil {
		m := toModelInfoDTO(*o.Model)
		dto.Model = &m
	}
	return dto
}
