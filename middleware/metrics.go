package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form submissions by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	validationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validation_errors_total",
			Help: "Total number of field validation errors by field",
		},
		[]string{"field"},
	)
)

// RecordSubmission counts one completed submission attempt.
// Outcome is one of "invalid", "failed", "succeeded".
func RecordSubmission(flow, outcome string) {
	submissionsTotal.WithLabelValues(flow, outcome).Inc()
}

// RecordValidationError counts one field violation from a validation pass.
// Field label cardinality is bounded by the form schemas.
func RecordValidationError(field string) {
	validationErrorsTotal.WithLabelValues(field).Inc()
}
