// Package metrics exposes the service's Prometheus counters. Everything is
// registered on the default registry and served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_dispatches_total",
		Help: "Emergency dispatches by trigger source.",
	}, []string{"source"})

	SMSSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_sms_submissions_total",
		Help: "SMS submissions to the gateway by outcome.",
	}, []string{"outcome"})

	VoiceCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_voice_calls_total",
		Help: "Outbound voice call submissions by outcome.",
	}, []string{"outcome"})

	PushNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_push_notifications_total",
		Help: "Web push deliveries by outcome.",
	}, []string{"outcome"})
)
