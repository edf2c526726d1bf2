package session

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	eventsCounter  metric.Int64Counter
	applyHistogram metric.Float64Histogram
	errorCounter   metric.Int64Counter
	sessionsActive metric.Int64UpDownCounter
)

// InitMetrics registers custom OTel metric instruments for the session
// domain. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("session")

	var err error

	eventsCounter, err = meter.Int64Counter("calcpad.events.total",
		metric.WithDescription("Total number of calculator input events applied"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return fmt.Errorf("creating events counter: %w", err)
	}

	applyHistogram, err = meter.Float64Histogram("calcpad.apply.duration",
		metric.WithDescription("Duration of event batch application in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating apply histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calcpad.errors.total",
		metric.WithDescription("Total number of session operation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	sessionsActive, err = meter.Int64UpDownCounter("calcpad.sessions.active",
		metric.WithDescription("Number of live calculator sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating sessions gauge: %w", err)
	}

	return nil
}
