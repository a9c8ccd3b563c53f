package dbal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors updated by the PingConnectionMiddleware.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	probes     *prometheus.CounterVec
	reconnects *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbal",
			Name:      "probes_total",
			Help:      "Connection probes issued before handling a command, by result.",
		}, []string{"result"}),
		reconnects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbal",
			Name:      "reconnects_total",
			Help:      "Reconnections attempted after a failed probe, by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeProbe(probeErr *ProbeError) {
	if m == nil {
		return
	}
	if probeErr == nil {
		m.probes.WithLabelValues("ok").Inc()
		return
	}
	m.probes.WithLabelValues(probeErr.Kind.String()).Inc()
}

func (m *Metrics) observeReconnect(reconnectErr *ReconnectError) {
	if m == nil {
		return
	}
	if reconnectErr == nil {
		m.reconnects.WithLabelValues("ok").Inc()
		return
	}
	m.reconnects.WithLabelValues(reconnectErr.Op + "_failure").Inc()
}
