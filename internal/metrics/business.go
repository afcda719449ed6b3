package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records use case outcomes. domain is "registry", "template", "session"
// or "ledger"; operation is the snake_case use case method; status is "success" or "error".
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
	// RecordTokensIssued counts credentials minted through path ("template", "session",
	// "claim" or "batch"). Non-positive counts are ignored.
	RecordTokensIssued(ctx context.Context, path string, count int)
}

type businessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
	issued     metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments on meterProvider, prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, opErr := meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Use case invocations by domain, operation and outcome"),
		metric.WithUnit("{operation}"),
	)
	durations, durErr := meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Use case latency"),
		metric.WithUnit("s"),
	)
	issued, issuedErr := meter.Int64Counter(
		namespace+"_tokens_issued_total",
		metric.WithDescription("Soulbound credentials minted by mint path"),
		metric.WithUnit("{token}"),
	)
	if err := errors.Join(opErr, durErr, issuedErr); err != nil {
		return nil, fmt.Errorf("create business instruments: %w", err)
	}

	return &businessMetrics{operations: operations, durations: durations, issued: issued}, nil
}

func operationAttrs(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, operationAttrs(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durations.Record(ctx, duration.Seconds(), operationAttrs(domain, operation, status))
}

func (b *businessMetrics) RecordTokensIssued(ctx context.Context, path string, count int) {
	if count <= 0 {
		return
	}
	b.issued.Add(ctx, int64(count), metric.WithAttributes(attribute.String("path", path)))
}

// NoOpBusinessMetrics discards everything; used when METRICS_ENABLED is false.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a NoOpBusinessMetrics.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (n *NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

func (n *NoOpBusinessMetrics) RecordTokensIssued(context.Context, string, int) {}
