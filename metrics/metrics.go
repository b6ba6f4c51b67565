package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_requests_submitted_total",
		Help: "Total number of rental requests successfully submitted.",
	})

	RequestsApprovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_requests_approved_total",
		Help: "Total number of rental requests approved.",
	})

	RequestsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_requests_rejected_total",
		Help: "Total number of rental requests rejected.",
	})

	BookingConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_booking_conflicts_total",
		Help: "Total number of submissions rejected due to a date conflict.",
	})

	CleanupRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_cleanup_removed_total",
		Help: "Total number of ledger entries removed by cleanup passes.",
	})

	NotifyErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentals_notify_errors_total",
		Help: "Total number of swallowed notification failures.",
	},
		[]string{"event"},
	)
)
