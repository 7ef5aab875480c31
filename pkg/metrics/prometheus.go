package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	messagesSent *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	channelShare *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		messagesSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "senticast_messages_sent_total",
				Help: "Total number of mention messages routed to a backend",
			},
			[]string{"backend", "source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "senticast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		channelShare: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "senticast_channel_share_pct",
				Help: "Latest observed share of a sentiment channel in percent",
			},
			[]string{"channel"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "senticast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordMessageSent records a mention routed to a backend.
func (r *Recorder) RecordMessageSent(backend, source string) {
	r.messagesSent.WithLabelValues(backend, source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordChannelShare records the latest percentage share of a channel.
func (r *Recorder) RecordChannelShare(channel string, pct float64) {
	r.channelShare.WithLabelValues(channel).Set(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
