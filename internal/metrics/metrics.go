package metrics

import "github.com/prometheus/client_golang/prometheus"

// CompletionMetrics counts and times calls to the completion endpoint.
type CompletionMetrics struct {
	requestsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

func NewCompletionMetrics(reg prometheus.Registerer) *CompletionMetrics {
	m := &CompletionMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careerai",
			Subsystem: "completion",
			Name:      "requests_total",
			Help:      "Total chat completion requests by outcome",
		}, []string{"provider", "model", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "careerai",
			Subsystem: "completion",
			Name:      "duration_seconds",
			Help:      "Latency of chat completion round trips",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"provider", "model"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.duration)
	return m
}

func (m *CompletionMetrics) Observe(provider, model, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(provider, model, outcome).Inc()
	m.duration.WithLabelValues(provider, model).Observe(seconds)
}

// JobMetrics tracks the asynchronous review worker.
type JobMetrics struct {
	processed *prometheus.CounterVec
}

func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	m := &JobMetrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careerai",
			Subsystem: "jobs",
			Name:      "processed_total",
			Help:      "Resume review jobs processed by final status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.processed)
	return m
}

func (m *JobMetrics) ObserveJob(status string) {
	if m == nil {
		return
	}
	m.processed.WithLabelValues(status).Inc()
}
