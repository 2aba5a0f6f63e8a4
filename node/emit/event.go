// Package emit provides pluggable event emission for tooling that walks
// node collections: graph assemblers, definition registries and code
// generators. The node descriptor layer itself stays pure; emitters are
// opt-in plumbing the surrounding tooling drives.
package emit

// Standard event messages emitted by assembly tooling.
const (
	MsgNodeVisited  = "node_visited"
	MsgExprBuilt    = "expr_built"
	MsgEntryPoint   = "entry_point"
	MsgStateSlot    = "state_slot"
	MsgManifest     = "manifest_built"
	MsgDecodeFailed = "decode_failed"
)

// Event records one observation during an assembly walk.
//
// Events carry enough context to reconstruct what the assembler saw:
// which graph was being assembled, which node was being queried, and what
// happened. Meta carries observation-specific detail:
//   - "n_inputs", "n_outputs": arity of the visited node
//   - "expr": the synthesized call expression source
//   - "eval_fn": an entry-point descriptor key
//   - "deps": an aggregated manifest size
//   - "error": failure detail
type Event struct {
	// GraphID identifies the graph being assembled.
	GraphID string

	// NodeID identifies the node the observation concerns. Empty for
	// graph-level events such as manifest aggregation.
	NodeID string

	// Msg names the observation, usually one of the Msg constants.
	Msg string

	// Meta holds observation-specific detail.
	Meta map[string]any
}
