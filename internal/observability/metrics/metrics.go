package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	fetchTotal     *prometheus.CounterVec
	submitTotal    *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	staleRenders   prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "booking",
			Name:      "slot_fetch_total",
			Help:      "Availability fetches by outcome",
		}, []string{"outcome"}),
		submitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "booking",
			Name:      "submit_total",
			Help:      "Reservation submits by outcome",
		}, []string{"outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reservas",
			Subsystem: "booking",
			Name:      "backend_latency_seconds",
			Help:      "Latency of booking backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		staleRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reservas",
			Subsystem: "booking",
			Name:      "stale_renders_total",
			Help:      "Slot responses dropped because a newer render was issued",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal, m.submitTotal, m.backendLatency, m.staleRenders)
	return m
}

func (m *BookingMetrics) ObserveFetch(outcome string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveSubmit(outcome string) {
	if m == nil {
		return
	}
	m.submitTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveBackendLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.backendLatency.WithLabelValues(endpoint).Observe(seconds)
}

func (m *BookingMetrics) ObserveStaleRender() {
	if m == nil {
		return
	}
	m.staleRenders.Inc()
}
