package metrics

import "github.com/prometheus/client_golang/prometheus"

type SessionMetrics struct {
	LoginsTotal    *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	m := &SessionMetrics{
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live sessions.",
		}),
	}

	reg.MustRegister(m.LoginsTotal, m.ActiveSessions)
	return m
}
