package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LogEmitter writes structured event lines to a writer.
//
// Two output modes are supported:
//   - Text mode (default): "[msg] graph=g node=n key=value"
//   - JSON mode: one JSON object per line, for machine consumption
//
// Example text output:
//
//	[expr_built] graph=osc node=add expr=add(in0, in1, state)
//
// LogEmitter serializes writes, so one emitter may be shared by concurrent
// assembly walks.
type LogEmitter struct {
	mu       sync.Mutex
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter writing to writer, or os.Stdout when
// writer is nil. jsonMode selects JSON lines over the text format.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{writer: writer, jsonMode: jsonMode}
}

// Emit writes one line for the event. Write errors are swallowed: logging
// must never abort an assembly.
func (l *LogEmitter) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.jsonMode {
		payload := struct {
			GraphID string         `json:"graphID"`
			NodeID  string         `json:"nodeID,omitempty"`
			Msg     string         `json:"msg"`
			Meta    map[string]any `json:"meta,omitempty"`
		}{event.GraphID, event.NodeID, event.Msg, event.Meta}
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		_, _ = l.writer.Write(append(data, '\n'))
		return
	}

	line := fmt.Sprintf("[%s] graph=%s", event.Msg, event.GraphID)
	if event.NodeID != "" {
		line += " node=" + event.NodeID
	}
	for k, v := range event.Meta {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	_, _ = fmt.Fprintln(l.writer, line)
}
