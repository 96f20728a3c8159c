package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/classmeta/internal/core/ports"
)

// Setup creates a TracerProvider reporting spans through logger and registers
// it as the global provider. The returned function flushes and stops it.
func Setup(logger ports.Logger) (*OTelTracer, func(context.Context) error) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)
	return NewOTelTracer(tp), tp.Shutdown
}
