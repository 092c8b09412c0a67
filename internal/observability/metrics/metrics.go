package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead capture flow.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	dispatchTotal    *prometheus.CounterVec
	dispatchLatency  *prometheus.HistogramVec
}

// NewLeadMetrics registers the collectors on reg, or on the default
// registerer when reg is nil.
func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launch216",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead form submissions by outcome",
		}, []string{"outcome"}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launch216",
			Subsystem: "leads",
			Name:      "dispatch_total",
			Help:      "Total notification emails handed to the provider",
		}, []string{"provider", "status"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "launch216",
			Subsystem: "leads",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of notification email sends",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.dispatchTotal, m.dispatchLatency)
	return m
}

// ObserveSubmission counts one handled request by outcome.
func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveDispatch records one send attempt. An empty provider is labelled "unknown".
func (m *LeadMetrics) ObserveDispatch(provider, status string, seconds float64) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "unknown"
	}
	m.dispatchTotal.WithLabelValues(provider, status).Inc()
	m.dispatchLatency.WithLabelValues(provider).Observe(seconds)
}
