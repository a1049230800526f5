package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelPrize  = "prize"
	labelReason = "reason"
	labelOp     = "op"
)

// Причины отказа в спине
const (
	ReasonInProgress  = "in_progress"
	ReasonCooldown    = "cooldown"
	ReasonUnavailable = "status_unavailable"
)

var (
	spinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheel_spins_total",
		Help: "Завершенные спины по призу",
	}, []string{labelPrize})

	spinsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheel_spins_rejected_total",
		Help: "Отклоненные спины по причине",
	}, []string{labelReason})

	backendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheel_backend_failures_total",
		Help: "Ошибки запросов к бэкенду звезд",
	}, []string{labelOp})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wheel_backend_request_seconds",
		Help:    "Время ответа бэкенда звезд",
		Buckets: prometheus.DefBuckets,
	}, []string{labelOp})
)

func SpinCompleted(prize string) {
	spinsTotal.WithLabelValues(prize).Inc()
}

func SpinRejected(reason string) {
	spinsRejected.WithLabelValues(reason).Inc()
}

func BackendFailure(op string) {
	backendFailures.WithLabelValues(op).Inc()
}

// ObserveBackend - засечь время запроса: defer metrics.ObserveBackend("status")()
func ObserveBackend(op string) func() {
	start := time.Now()
	return func() {
		backendLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
