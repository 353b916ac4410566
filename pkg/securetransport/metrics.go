package securetransport

//
// Metrics definitions
//

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsSummaryObjectives returns the summary objectives for promauto.NewSummary.
func metricsSummaryObjectives() map[float64]float64 {
	return map[float64]float64{
		0.5:  0.010,
		0.9:  0.010,
		0.99: 0.001,
	}
}

var (
	// metricEnginesAlive counts the engines not released yet.
	metricEnginesAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "securetransport_engines_alive",
		Help: "Number of engines that have not been released yet",
	})

	// metricConnectionsAlive counts the registered connection shims.
	metricConnectionsAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "securetransport_connections_alive",
		Help: "Number of connection shims registered with an engine",
	})

	// metricHandshakeSteps counts handshake steps by outcome.
	metricHandshakeSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securetransport_handshake_steps_total",
		Help: "Number of handshake steps by outcome",
	}, []string{"outcome"})

	// metricBytes counts the plaintext bytes by direction.
	metricBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securetransport_plaintext_bytes_total",
		Help: "Plaintext bytes read or written by established streams",
	}, []string{"direction"})

	// metricHandshakeDurationSeconds summarizes how long terminated handshakes took.
	metricHandshakeDurationSeconds = promauto.NewSummary(prometheus.SummaryOpts{
		Name:       "securetransport_handshake_duration_seconds",
		Help:       "Summarizes the time to complete or fail the handshake (in seconds)",
		Objectives: metricsSummaryObjectives(),
	})
)
