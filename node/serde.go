package node

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Definition is the serialized form of a node: a kind tag naming the decoder
// plus a kind-specific payload. Definitions are what front-ends and stores
// exchange; Decode turns one back into a live Node through a Registry.
type Definition struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Marshaler is implemented by node kinds that have a serial form.
type Marshaler interface {
	Node

	// Kind is the registry tag for this node kind.
	Kind() string

	// MarshalDef encodes the node's payload.
	MarshalDef() (json.RawMessage, error)
}

// Encode serializes a node to a Definition. Nodes whose kind does not
// implement Marshaler yield an error wrapping ErrNotSerializable.
func Encode(n Node) (Definition, error) {
	m, ok := n.(Marshaler)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %T", ErrNotSerializable, n)
	}
	data, err := m.MarshalDef()
	if err != nil {
		return Definition{}, fmt.Errorf("node: encode %q: %w", m.Kind(), err)
	}
	return Definition{Kind: m.Kind(), Data: data}, nil
}

// DecodeFunc reconstructs a node from its payload. The registry is supplied
// so decoders for wrapper kinds can decode the node they wrap.
type DecodeFunc func(r *Registry, data json.RawMessage) (Node, error)

// Registry maps node kinds to their decoders.
//
// A Registry is safe for concurrent use. The zero value is not usable; use
// NewRegistry for an empty registry or DefaultRegistry for one preloaded
// with the kinds this package defines.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]DecodeFunc
	metrics  *Metrics
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMetrics attaches a metrics collector; the registry records kind counts
// and decode outcomes on it.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{decoders: make(map[string]DecodeFunc)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry returns a registry preloaded with decoders for every
// serializable kind this package defines: KindFn, KindExpr and the push,
// pull, state and deps wrappers.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for kind, dec := range map[string]DecodeFunc{
		KindFn:    decodeFn,
		KindExpr:  decodeExpr,
		kindPush:  decodePush,
		kindPull:  decodePull,
		kindState: decodeState,
		kindDeps:  decodeDeps,
	} {
		// Register cannot fail on a fresh registry.
		_ = r.Register(kind, dec)
	}
	return r
}

// Register adds a decoder for a node kind. Registering a kind twice is an
// error wrapping ErrDuplicateKind.
func (r *Registry) Register(kind string, dec DecodeFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.decoders[kind]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}
	r.decoders[kind] = dec
	if r.metrics != nil {
		r.metrics.kindsRegistered(len(r.decoders))
	}
	return nil
}

// Decode reconstructs a node from its Definition. An unregistered kind is an
// error wrapping ErrUnknownKind.
func (r *Registry) Decode(def Definition) (Node, error) {
	r.mu.RLock()
	dec, ok := r.decoders[def.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, def.Kind)
	}
	n, err := dec(r, def.Data)
	if r.metrics != nil {
		r.metrics.decoded(def.Kind, err)
	}
	if err != nil {
		return nil, fmt.Errorf("node: decode %q: %w", def.Kind, err)
	}
	return n, nil
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.decoders))
	for kind := range r.decoders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Wrapper kinds serialize as the wrapped node's Definition plus the single
// capability the wrapper adds.

const (
	kindPush  = "push"
	kindPull  = "pull"
	kindState = "state"
	kindDeps  = "deps"
)

type evalWrapPayload struct {
	Node   Definition `json:"node"`
	EvalFn EvalFn     `json:"eval_fn"`
}

type stateWrapPayload struct {
	Node Definition `json:"node"`
	Type string     `json:"type"`
}

type depsWrapPayload struct {
	Node Definition `json:"node"`
	Deps []string   `json:"deps"`
}

func (p *pushNode) Kind() string { return kindPush }

func (p *pushNode) MarshalDef() (json.RawMessage, error) {
	inner, err := Encode(p.Node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(evalWrapPayload{Node: inner, EvalFn: p.fn})
}

func decodePush(r *Registry, data json.RawMessage) (Node, error) {
	inner, fn, err := decodeEvalWrap(r, data)
	if err != nil {
		return nil, err
	}
	return WithPushEval(inner, fn), nil
}

func (p *pullNode) Kind() string { return kindPull }

func (p *pullNode) MarshalDef() (json.RawMessage, error) {
	inner, err := Encode(p.Node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(evalWrapPayload{Node: inner, EvalFn: p.fn})
}

func decodePull(r *Registry, data json.RawMessage) (Node, error) {
	inner, fn, err := decodeEvalWrap(r, data)
	if err != nil {
		return nil, err
	}
	return WithPullEval(inner, fn), nil
}

func decodeEvalWrap(r *Registry, data json.RawMessage) (Node, EvalFn, error) {
	var payload evalWrapPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, EvalFn{}, err
	}
	inner, err := r.Decode(payload.Node)
	if err != nil {
		return nil, EvalFn{}, err
	}
	return inner, payload.EvalFn, nil
}

func (s *stateNode) Kind() string { return kindState }

func (s *stateNode) MarshalDef() (json.RawMessage, error) {
	inner, err := Encode(s.Node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(stateWrapPayload{Node: inner, Type: SprintExpr(s.ty)})
}

func decodeState(r *Registry, data json.RawMessage) (Node, error) {
	var payload stateWrapPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	inner, err := r.Decode(payload.Node)
	if err != nil {
		return nil, err
	}
	ty, err := ParseTypeExpr(payload.Type)
	if err != nil {
		return nil, err
	}
	return WithStateType(inner, ty), nil
}

func (d *depsNode) Kind() string { return kindDeps }

func (d *depsNode) MarshalDef() (json.RawMessage, error) {
	inner, err := Encode(d.Node)
	if err != nil {
		return nil, err
	}
	deps := make([]string, len(d.deps))
	for i, dep := range d.deps {
		deps[i] = dep.String()
	}
	return json.Marshal(depsWrapPayload{Node: inner, Deps: deps})
}

func decodeDeps(r *Registry, data json.RawMessage) (Node, error) {
	var payload depsWrapPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	inner, err := r.Decode(payload.Node)
	if err != nil {
		return nil, err
	}
	deps := make([]Dep, len(payload.Deps))
	for i, s := range payload.Deps {
		dep, err := ParseDep(s)
		if err != nil {
			return nil, err
		}
		deps[i] = dep
	}
	return WithDeps(inner, deps...), nil
}
