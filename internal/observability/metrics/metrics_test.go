package metrics

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("endpoint", "register"),
		attribute.String("email", "alice@aurafarming.co"),
		attribute.String("reason", "weak_password"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "email" {
			t.Fatalf("expected email to be dropped")
		}
	}
}

func TestNilMetricsRecordsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRegistration(nil)
	m.RecordRegistrationFailure(nil, "weak_password")
	m.RecordUsernameCheck(nil, "available")
	m.RecordProvisionRequest(nil, "requested")
	m.RecordRateLimitAllowed(nil, "register")
	m.RecordRateLimitDenied(nil, "register", "bucket_empty")
}
