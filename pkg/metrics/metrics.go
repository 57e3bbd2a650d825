// Package metrics exposes Prometheus instrumentation for the auth
// protocol.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Attempt outcomes for the auth_attempts_total counter.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Auth holds the protocol-level instruments.
type Auth struct {
	SignUps        prometheus.Counter
	AuthAttempts   *prometheus.CounterVec
	SweptVerifiers prometheus.Counter
	RPCDuration    *prometheus.HistogramVec
}

// NewAuth registers the protocol instruments with reg. The pending and
// sessions callbacks feed gauges sampled at scrape time.
func NewAuth(reg prometheus.Registerer, pending, sessions func() int) *Auth {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "zkauthd_pending_verifiers",
		Help: "Number of verifiers awaiting an authentication response",
	}, func() float64 { return float64(pending()) })

	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "zkauthd_active_sessions",
		Help: "Number of live authenticated sessions",
	}, func() float64 { return float64(sessions()) })

	return &Auth{
		SignUps: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "zkauthd_signups_total",
			Help: "Total successful user registrations",
		}),
		AuthAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "zkauthd_auth_attempts_total",
			Help: "Total authentication attempts by outcome",
		}, []string{"result"}),
		SweptVerifiers: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "zkauthd_swept_verifiers_total",
			Help: "Total pending verifiers evicted by the TTL sweeper",
		}),
		RPCDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zkauthd_rpc_duration_seconds",
			Help:    "Wall time of RPC handlers",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}
