package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ForecastRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "forecast_requests_total",
			Help:      "Forecast requests by outcome",
		},
		[]string{"status"},
	)

	TrainingRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "training_runs_total",
			Help:      "Completed model training passes by trigger",
		},
		[]string{"trigger"},
	)

	AnomaliesDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "anomalies_detected_total",
			Help:      "Anomalies flagged by severity",
		},
		[]string{"severity"},
	)

	MentionsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "mentions_ingested_total",
			Help:      "Mentions accepted into the pipeline by source",
		},
		[]string{"source"},
	)

	AnalyzeRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "analyze_requests_total",
			Help:      "Ad-hoc analyze calls",
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "cache_hits_total",
			Help:      "Cache hits by cache name",
		},
		[]string{"cache"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "cache_misses_total",
			Help:      "Cache misses by cache name",
		},
		[]string{"cache"},
	)

	PIIScrubbed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "senticast",
			Name:      "pii_scrubbed_total",
			Help:      "PII replacements by kind",
		},
		[]string{"kind"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ForecastRequests,
			TrainingRuns,
			AnomaliesDetected,
			MentionsIngested,
			AnalyzeRequests,
			CacheHits,
			CacheMisses,
			PIIScrubbed,
		)
	})
}
