// internal/metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Метрики конвейера: приём WS-событий, разбор и публикация в Kafka.
var (
	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketstream", Subsystem: "collector", Name: "events_total",
			Help: "Events received from the WebSocket stream",
		},
		[]string{"type"},
	)

	ParseErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketstream", Subsystem: "collector", Name: "parse_errors_total",
			Help: "Payloads that failed to parse",
		},
		[]string{"type"},
	)

	PublishErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketstream", Subsystem: "collector", Name: "publish_errors_total",
			Help: "Events that failed to publish to Kafka",
		},
		[]string{"type"},
	)

	PublishLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketstream", Subsystem: "collector", Name: "publish_latency_seconds",
			Help:    "End-to-end latency from receive to publish (seconds)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	ReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketstream", Subsystem: "collector", Name: "ws_reconnects_total",
			Help: "WebSocket reconnect attempts",
		},
	)
)

var registerOnce sync.Once

// Register регистрирует метрики. Повторные вызовы безопасны.
// Без аргументов используется prometheus.DefaultRegisterer.
func Register(registerers ...prometheus.Registerer) {
	registerOnce.Do(func() {
		regs := registerers
		if len(regs) == 0 {
			regs = []prometheus.Registerer{prometheus.DefaultRegisterer}
		}
		for _, r := range regs {
			r.MustRegister(EventsTotal, ParseErrors, PublishErrors, PublishLatency, ReconnectsTotal)
		}
	})
}
