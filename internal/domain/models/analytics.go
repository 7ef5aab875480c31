package models

import "time"

// ChannelDeltas holds share changes versus the previous window.
type ChannelDeltas struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// ChannelVolatility holds per-channel sample standard deviations.
type ChannelVolatility struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// TrendSummary is the current-distribution view served by the trends
// endpoint.
type TrendSummary struct {
	AsOf       time.Time
	WindowDays int
	Positive   float64
	Negative   float64
	Neutral    float64
	Dominant   string
	Volume     int64
	Deltas     ChannelDeltas
	Volatility ChannelVolatility
}

// RealtimeSummary aggregates very recent mentions.
type RealtimeSummary struct {
	From     time.Time
	To       time.Time
	Total    int
	ByLabel  map[string]int
	BySource map[string]int
	Positive float64 // share in percent
	Negative float64
	Neutral  float64
}

// OverviewSnapshot is a consolidated view of all analytics sections.
// Note: no transport (json/http) concerns here.
type OverviewSnapshot struct {
	GeneratedAt time.Time
	Trends      *TrendSummary
	Forecast    *ForecastResult
	Anomalies   []AnomalyRecord
	Model       *ModelInfo
	Errors      map[string]string
}
