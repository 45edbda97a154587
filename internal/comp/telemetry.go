package comp

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("github.com/specialistvlad/compflat/internal/comp")
var meter = otel.Meter("github.com/specialistvlad/compflat/internal/comp")

const (
	// attrModel is the attribute key carrying the id of the root model a
	// measurement belongs to.
	attrModel = "model"
	// attrOperation distinguishes flattening from internalization.
	attrOperation = "operation"
)

var (
	// operationDuration measures one successful Flatten or Internalize call.
	//
	// Each record is associated with attrModel and attrOperation.
	operationDuration metric.Float64Histogram
	// operationFailures counts Flatten and Internalize calls that returned an
	// error.
	operationFailures metric.Int64Counter
	// diagnosticsTotal counts non-fatal diagnostics produced by flattening.
	diagnosticsTotal metric.Int64Counter
)

func init() {
	var err error
	operationDuration, err = meter.Float64Histogram(
		"compflat.operation.duration",
		metric.WithDescription("The duration of a single flatten or internalize call."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("comp: failed to init 'compflat.operation.duration' instrument")
	}

	operationFailures, err = meter.Int64Counter(
		"compflat.operation.failures",
		metric.WithDescription("The number of flatten or internalize calls that have failed."),
	)
	if err != nil {
		panic("comp: failed to init 'compflat.operation.failures' instrument")
	}

	diagnosticsTotal, err = meter.Int64Counter(
		"compflat.flatten.diagnostics",
		metric.WithDescription("The number of non-fatal diagnostics reported by flattening."),
	)
	if err != nil {
		panic("comp: failed to init 'compflat.flatten.diagnostics' instrument")
	}
}

// measure records the outcome of one operation: its duration on success, a
// failure otherwise. diagnostics is added to diagnosticsTotal.
func measure(ctx context.Context, operation, model string, succeeded bool, d time.Duration, diagnostics int) {
	attrs := attribute.NewSet(
		attribute.String(attrModel, model),
		attribute.String(attrOperation, operation),
	)
	if succeeded {
		// Floating-point division keeps sub-millisecond precision.
		duration := float64(d) / float64(time.Millisecond)
		operationDuration.Record(ctx, duration, metric.WithAttributeSet(attrs))
	} else {
		operationFailures.Add(ctx, 1, metric.WithAttributeSet(attrs))
	}
	if diagnostics > 0 {
		diagnosticsTotal.Add(ctx, int64(diagnostics), metric.WithAttributeSet(attrs))
	}
}
