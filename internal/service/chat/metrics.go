package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wardbot",
			Name:      "responses_total",
			Help:      "Responses produced, by category and priority.",
		},
		[]string{"category", "priority"},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wardbot",
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		},
	)
)
