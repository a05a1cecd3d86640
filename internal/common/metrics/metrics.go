package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of match operations processed",
		},
		[]string{"outcome"},
	)

	SponsorMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponsor_matches_total",
			Help: "Total matched sponsors returned, by tier",
		},
		[]string{"tier"},
	)

	FanoutWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_writes_total",
			Help: "Sponsorship request fan-out write results",
		},
		[]string{"result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Outbound email delivery results by operation",
		},
		[]string{"operation", "result"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "operation_duration_seconds",
			Help: "Duration of API operations in seconds",
		},
		[]string{"operation"},
	)
)

// Fan-out write results
const (
	FanoutCreated = "created"
	FanoutDeduped = "deduped"
	FanoutFailed  = "failed"
)
