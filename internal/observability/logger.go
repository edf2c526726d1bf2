package observability

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger builds the process-wide logger. Set CALC_LOG=dev for a
// human-readable console encoder during local development; the default
// is production JSON.
func InitLogger() error {
	var err error

	if os.Getenv("CALC_LOG") == "dev" {
		Logger, err = zap.NewDevelopment()
	} else {
		Logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and
// span_id fields from the active OTel span in ctx.
//
// The ctx itself is embedded as a zap.Any("context", ctx) field: the
// otelzap bridge detects a field whose value implements
// context.Context and uses it as the context passed to Emit, so the
// exported OTLP log record carries the native TraceID/SpanID instead
// of all-zeros. The string fields keep stdout JSON logs greppable
// without an OTel-aware tool.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
