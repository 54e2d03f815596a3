package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReservationMetrics records metadata for stock reservation operations.
type ReservationMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	restock  *prometheus.CounterVec
}

// NewReservationMetrics registers the reservation metrics on the provided registerer.
func NewReservationMetrics(reg prometheus.Registerer) *ReservationMetrics {
	if reg == nil {
		return &ReservationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reservation_duration_seconds",
		Help:    "Duration of stock reservation transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_success",
		Help: "Successful stock reservation operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_failure",
		Help: "Failed stock reservation operations.",
	}, []string{"operation"})
	restock := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restock_units_total",
		Help: "Component units returned to inventory on assembly deletion.",
	}, []string{"component_type"})
	reg.MustRegister(duration, success, failure, restock)
	return &ReservationMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		restock:  restock,
	}
}

// ObserveDuration records the duration for the named operation.
func (r *ReservationMetrics) ObserveDuration(operation string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (r *ReservationMetrics) IncSuccess(operation string) {
	if r == nil || r.success == nil {
		return
	}
	r.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (r *ReservationMetrics) IncFailure(operation string) {
	if r == nil || r.failure == nil {
		return
	}
	r.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// AddRestockedUnits counts units returned to a component table.
func (r *ReservationMetrics) AddRestockedUnits(componentType string, units int) {
	if r == nil || r.restock == nil || units <= 0 {
		return
	}
	r.restock.WithLabelValues(normalizeLabel(componentType)).Add(float64(units))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
