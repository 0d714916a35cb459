package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts member registrations by mode (gateway/direct)
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_registrations_total",
		Help: "Number of member registrations by mode",
	}, []string{"mode"})

	// VerificationsTotal counts payment verification attempts by result
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_payment_verifications_total",
		Help: "Number of payment verification attempts by result",
	}, []string{"result"})

	// StalePendingMembers tracks members stuck in pending beyond the limit
	StalePendingMembers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "membership_stale_pending_members",
		Help: "Members pending payment for longer than the configured age",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_http_requests_total",
		Help: "Number of HTTP requests",
	}, []string{"method", "route", "status"})
)
