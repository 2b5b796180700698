package otelhelper

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SetError marks the span failed and records err with the given attributes.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if err == nil {
		return
	}

	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())
}

// RecordOutcome tags an action span with the outcome status. Error outcomes
// fail the span; skipped ones carry their reason.
func RecordOutcome(span trace.Span, status, reason, errMessage string) {
	span.SetAttributes(attribute.String(ActionStatusKey, status))

	switch status {
	case "error":
		SetError(span, errors.New(errMessage))
	case "skipped":
		span.SetAttributes(attribute.String(SkipReasonKey, reason))
	}
}
