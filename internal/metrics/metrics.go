// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petra_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petra_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	AssessmentsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petra_assessments_scored_total",
			Help: "Readiness assessments scored, by tier",
		},
		[]string{"tier"},
	)

	AIResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petra_ai_results_total",
			Help: "Recommendation and guide results by feature and source (ai, cache, fallback)",
		},
		[]string{"feature", "source"},
	)

	LeadsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petra_leads_submitted_total",
			Help: "Lead form submissions by form",
		},
		[]string{"form"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petra_emails_sent_total",
			Help: "Outbound emails and text messages by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petra_payment_webhook_events_total",
			Help: "Payment gateway webhook events by event type and outcome",
		},
		[]string{"event", "outcome"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
