package metrics

import "github.com/prometheus/client_golang/prometheus"

// ModerationMetrics tracks submissions and classifier latency.
type ModerationMetrics struct {
	SubmissionsTotal *prometheus.CounterVec
	LockoutsTotal    prometheus.Counter
	ClassifyDuration prometheus.Histogram
}

func NewModerationMetrics(reg prometheus.Registerer) *ModerationMetrics {
	m := &ModerationMetrics{
		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of post submissions, by outcome.",
		}, []string{"outcome"}),
		LockoutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lockouts_total",
			Help:      "Total number of posting lockouts started.",
		}),
		ClassifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classify_duration_seconds",
			Help:      "Duration of classifier calls in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
	}

	reg.MustRegister(m.SubmissionsTotal, m.LockoutsTotal, m.ClassifyDuration)
	return m
}
