package observer

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	observedMessages *prometheus.CounterVec
	latestSequence   *prometheus.GaugeVec
	lastHeight       prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := metrics{
		observedMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "svm_bridge",
				Name:      "observed_messages_total",
				Help:      "Number of distinct published messages recorded by the observer",
			},
			[]string{"unreliable"},
		),
		latestSequence: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "svm_bridge",
				Name:      "emitter_latest_sequence",
				Help:      "Highest sequence observed for the emitter",
			},
			[]string{"emitter"},
		),
		lastHeight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "svm_bridge",
				Name:      "observer_last_height",
				Help:      "Last ledger height whose events were handled",
			},
		),
	}
	registerer.MustRegister(m.observedMessages)
	registerer.MustRegister(m.latestSequence)
	registerer.MustRegister(m.lastHeight)

	return &m
}
