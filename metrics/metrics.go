// Package metrics provides Prometheus instrumentation for the matchmaking
// core: recommendation throughput, request lifecycle transitions, and
// presence gauges.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecommendationsServed counts recommendation responses, labeled by
	// audience ("founders", "investors") and result ("matched", "fallback").
	RecommendationsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_recommendations_served_total",
		Help: "Recommendation responses served",
	}, []string{"audience", "result"})

	// MatchRequestTransitions counts request lifecycle events, labeled by
	// transition: "created", "accepted", "rejected", "cancelled".
	MatchRequestTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_match_request_transitions_total",
		Help: "Match request lifecycle transitions",
	}, []string{"transition"})

	// ConnectionsCreated counts connections by type.
	ConnectionsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_connections_created_total",
		Help: "Connections created from accepted requests",
	}, []string{"type"})

	// MessagesSent counts chat messages persisted.
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venturelink_messages_sent_total",
		Help: "Chat messages sent",
	})

	// NotificationsSent counts notifications by type.
	NotificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_notifications_sent_total",
		Help: "Notifications emitted",
	}, []string{"type"})

	// OnlineUsers tracks the current number of users with a live presence
	// session.
	OnlineUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "venturelink_online_users",
		Help: "Current number of online users",
	})
)

func init() {
	prometheus.MustRegister(
		RecommendationsServed,
		MatchRequestTransitions,
		ConnectionsCreated,
		MessagesSent,
		NotificationsSent,
		OnlineUsers,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
