package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutor_token_requests_total",
		Help: "Number of access token requests.",
	})
	tokenErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutor_token_errors_total",
		Help: "Number of failed access token requests.",
	})
	roomCreations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutor_room_creations_total",
		Help: "Number of rooms created via token requests.",
	})
	commandInterpretations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_command_interpretations_total",
		Help: "Voice command interpretation outcomes.",
	}, []string{"outcome"})
	uploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutor_uploads_total",
		Help: "Number of accepted file uploads.",
	})
)
