package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of per-channel dispatch attempts by outcome",
		},
		[]string{"channel", "status"},
	)

	NotificationsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_suppressed_total",
			Help: "Total number of dispatches skipped by quiet hours",
		},
		[]string{"notification_type"},
	)

	VerificationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_transitions_total",
			Help: "Total number of applied verification status transitions",
		},
		[]string{"kind", "action"},
	)

	StaleReviewsFlagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verification_stale_reviews_flagged_total",
			Help: "Total number of pending businesses flagged as overdue by the reminder job",
		},
	)
)
