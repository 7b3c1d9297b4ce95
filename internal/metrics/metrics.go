package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, path template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siaksi",
		Name:      "http_requests_total",
		Help:      "Handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// AttendanceDecisions counts evaluator outcomes, accepted and rejected.
	AttendanceDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siaksi",
		Name:      "attendance_decisions_total",
		Help:      "Attendance submission outcomes.",
	}, []string{"outcome"})

	// BroadcastsDelivered counts fanned-out broadcast mails.
	BroadcastsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "siaksi",
		Name:      "mail_broadcasts_delivered_total",
		Help:      "Broadcast mails fanned out to inboxes.",
	})
)
