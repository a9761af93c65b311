package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultInvalid  = "invalid"
	ResultExisting = "existing"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionnaire_submissions_total",
			Help: "Total number of questionnaire submissions by result",
		},
		[]string{"result"},
	)

	CandidatesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_created_total",
			Help: "Total number of candidate creation attempts by result",
		},
		[]string{"result"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_webhook_events_total",
			Help: "Total number of webhook events received from the ATS by event type",
		},
		[]string{"event_type"},
	)

	ATSRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_requests_total",
			Help: "Total number of requests sent to the ATS API",
		},
		[]string{"operation", "code"},
	)

	ATSRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ats_request_duration_seconds",
			Help:    "Duration of ATS API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
