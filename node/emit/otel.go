package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter creates one OpenTelemetry span per event.
//
// Each span carries:
//   - Name: event.Msg (e.g. "expr_built")
//   - Attributes: graphgen.graph_id, graphgen.node_id, and every Meta field
//   - Status: error when Meta["error"] is present
//
// Spans are ended immediately: assembly events are points in time, not
// durations.
//
// Usage:
//
//	tracer := otel.Tracer("graphgen")
//	emitter := emit.NewOTelEmitter(tracer)
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter returns an emitter creating spans on the given tracer.
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit records the event as one immediately ended span.
func (o *OTelEmitter) Emit(event Event) {
	_, span := o.tracer.Start(context.Background(), event.Msg)
	defer span.End()

	span.SetAttributes(attribute.String("graphgen.graph_id", event.GraphID))
	if event.NodeID != "" {
		span.SetAttributes(attribute.String("graphgen.node_id", event.NodeID))
	}
	for key, value := range event.Meta {
		span.SetAttributes(metaAttribute("graphgen.meta."+key, value))
	}

	if errText, ok := event.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, errText)
		span.RecordError(fmt.Errorf("%s", errText))
	}
}

// EmitBatch records several events, amortizing tracer overhead when an
// assembler flushes a whole walk at once.
func (o *OTelEmitter) EmitBatch(ctx context.Context, events []Event) {
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		default:
		}
		o.Emit(event)
	}
}

func metaAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case uint32:
		return attribute.Int64(key, int64(v))
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
