package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Dispatch metrics
	ChatRequests       prometheus.Counter
	ChatRequestLatency prometheus.Histogram
	ChatErrors         *prometheus.CounterVec
	CommandRequests    *prometheus.CounterVec
	ReplyChunks        prometheus.Histogram

	// Provider metrics
	ProviderRequests *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
}

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	return &Metrics{
		ChatRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "relaybot_chat_requests_total",
			Help: "Total number of chat messages processed",
		}),

		ChatRequestLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "relaybot_chat_request_duration_seconds",
			Help:    "Chat request latency in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}, // up to 2 minutes for LLM responses
		}),

		ChatErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "relaybot_chat_errors_total",
			Help: "Total number of chat errors by type",
		}, []string{"error_type"}),

		CommandRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "relaybot_command_requests_total",
			Help: "Total number of command interactions by command",
		}, []string{"command"}),

		ReplyChunks: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "relaybot_reply_chunks",
			Help:    "Number of chunks per outbound reply",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		ProviderRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "relaybot_provider_requests_total",
			Help: "Total number of provider completion calls by provider and outcome",
		}, []string{"provider", "outcome"}),

		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relaybot_provider_request_duration_seconds",
			Help:    "Provider completion latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"provider"}),
	}
}

// ObserveProviderCall records one provider completion attempt.
func (m *Metrics) ObserveProviderCall(provider string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
	m.ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
}
