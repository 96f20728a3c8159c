package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/classmeta/internal/adapters/telemetry"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/core/ports"
	"go.trai.ch/classmeta/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecordedTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracer(tp), recorder
}

func attrMap(kvs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestOTelTracer_StartWithAttributes(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	_, span := tracer.Start(context.Background(), "metadata.lookup",
		ports.WithAttribute("class", domain.NewInternedString(`App\User`)),
	)
	span.SetAttribute("levels", 3)
	span.SetAttribute("absent", false)
	span.SetAttribute("source", "driver")
	span.SetAttribute("weight", 1.5)
	span.SetAttribute("count", int64(7))
	span.SetAttribute("names", []string{"a", "b"})
	span.SetAttribute("other", struct{ X int }{X: 1})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "metadata.lookup", ended[0].Name())
	assert.Equal(t, map[string]string{
		"class":  `App\User`,
		"levels": "3",
		"absent": "false",
		"source": "driver",
		"weight": "1.5",
		"count":  "7",
		"names":  `["a","b"]`,
		"other":  "{1}",
	}, attrMap(ended[0].Attributes()))
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestOTelTracer_ChildSpan(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	ctx, parent := tracer.Start(context.Background(), "warm")
	_, child := tracer.Start(ctx, "metadata.lookup")
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var lines []string
	mockLogger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		lines = append(lines, msg)
	}).Times(2)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockLogger)))
	tracer := telemetry.NewOTelTracer(tp)

	_, ok := tracer.Start(context.Background(), "ok", ports.WithAttribute("class", "A"))
	ok.End()

	_, failed := tracer.Start(context.Background(), "failed")
	failed.RecordError(errors.New("driver exploded"))
	failed.End()

	require.Len(t, lines, 2)
	assert.Regexp(t, `^ok \S+ class=A$`, lines[0])
	assert.Regexp(t, `^failed \S+ error="driver exploded"$`, lines[1])
}

func TestBridge_NilLogger(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))

	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "span")
	span.End()

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}

func TestSetup(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).Times(1)

	tracer, shutdown := telemetry.Setup(mockLogger)
	_, span := tracer.Start(context.Background(), "setup")
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
