package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics tracks negotiation outcomes and wallet bridge prompts.
type SessionMetrics struct {
	negotiations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	prompts      *prometheus.CounterVec
	sessions     prometheus.Gauge
}

var (
	sessionOnce     sync.Once
	sessionRegistry *SessionMetrics
)

// Session returns the process-wide metrics, registering them on first use.
func Session() *SessionMetrics {
	sessionOnce.Do(func() {
		sessionRegistry = &SessionMetrics{
			negotiations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "forge_session_negotiations_total",
				Help: "Completed session negotiations by key source and outcome.",
			}, []string{"source", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "forge_session_negotiation_seconds",
				Help:    "Wall time of session negotiations, including time spent waiting on the wallet.",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
			}, []string{"source"}),
			prompts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "forge_wallet_bridge_prompts_total",
				Help: "Wallet bridge connect/sign requests by result.",
			}, []string{"kind", "result"}),
			sessions: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "forge_session_store_records",
				Help: "Session records currently held by the in-memory store.",
			}),
		}
		prometheus.MustRegister(
			sessionRegistry.negotiations,
			sessionRegistry.duration,
			sessionRegistry.prompts,
			sessionRegistry.sessions,
		)
	})
	return sessionRegistry
}

// ObserveNegotiation records one finished negotiation. outcome is
// "established" or the failure kind name.
func (m *SessionMetrics) ObserveNegotiation(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if source == "" {
		source = "unknown"
	}
	m.negotiations.WithLabelValues(source, outcome).Inc()
	m.duration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObservePrompt records a bridge request.
func (m *SessionMetrics) ObservePrompt(kind, result string) {
	if m == nil {
		return
	}
	m.prompts.WithLabelValues(kind, result).Inc()
}

// SetStoredSessions reports the in-memory store size.
func (m *SessionMetrics) SetStoredSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
