package emit

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *OTelEmitter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, NewOTelEmitter(otel.Tracer("test"))
}

func spanAttributes(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		out[kv.Key] = kv.Value
	}
	return out
}

// TestOTelEmitterSpan verifies one span per event with graph, node and meta
// attributes.
func TestOTelEmitterSpan(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		GraphID: "osc",
		NodeID:  "add",
		Msg:     MsgExprBuilt,
		Meta: map[string]any{
			"expr":     "add(in0, in1)",
			"n_inputs": 2,
		},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != MsgExprBuilt {
		t.Errorf("span name = %q, want %q", span.Name, MsgExprBuilt)
	}

	attrs := spanAttributes(span.Attributes)
	if got := attrs["graphgen.graph_id"].AsString(); got != "osc" {
		t.Errorf("graph_id = %q, want %q", got, "osc")
	}
	if got := attrs["graphgen.node_id"].AsString(); got != "add" {
		t.Errorf("node_id = %q, want %q", got, "add")
	}
	if got := attrs["graphgen.meta.expr"].AsString(); got != "add(in0, in1)" {
		t.Errorf("meta.expr = %q, want %q", got, "add(in0, in1)")
	}
	if got := attrs["graphgen.meta.n_inputs"].AsInt64(); got != 2 {
		t.Errorf("meta.n_inputs = %d, want 2", got)
	}
}

// TestOTelEmitterErrorStatus verifies error metadata marks the span.
func TestOTelEmitterErrorStatus(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		GraphID: "osc",
		Msg:     MsgDecodeFailed,
		Meta:    map[string]any{"error": "unknown node kind: \"mystery\""},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want error", spans[0].Status.Code)
	}
}

// TestOTelEmitterBatch verifies batch emission creates a span per event and
// honors cancellation.
func TestOTelEmitterBatch(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	events := []Event{
		{GraphID: "g", NodeID: "a", Msg: MsgNodeVisited},
		{GraphID: "g", NodeID: "b", Msg: MsgNodeVisited},
		{GraphID: "g", Msg: MsgManifest},
	}
	emitter.EmitBatch(context.Background(), events)
	if got := len(exporter.GetSpans()); got != 3 {
		t.Errorf("got %d spans, want 3", got)
	}

	exporter.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	emitter.EmitBatch(ctx, events)
	if got := len(exporter.GetSpans()); got != 0 {
		t.Errorf("got %d spans after cancellation, want 0", got)
	}
}
