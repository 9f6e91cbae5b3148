package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "interview",
		Name:      "active_rooms",
		Help:      "Current number of open signaling rooms",
	})

	SessionsByPhase = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_total",
		Help:      "Total sessions entering each phase",
	}, []string{"phase"})

	RelayedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "relayed_messages_total",
		Help:      "Total negotiation payloads relayed between peers",
	})

	QualityTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "room_quality_transitions_total",
		Help:      "Room state transitions driven by quality monitoring",
	}, []string{"state"})

	LateResponses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "late_responses_total",
		Help:      "Responses rejected because the capture window had closed",
	})

	ResponsesScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "responses_scored_total",
		Help:      "Responses run through the scoring pipeline",
	})
)

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
