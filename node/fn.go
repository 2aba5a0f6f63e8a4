package node

import (
	"encoding/json"
	"go/ast"
)

// Fn is the statically typed node kind: a node defined by a free-standing Go
// function declaration. Parameters are the node's inputs, results are its
// outputs, and synthesized calls invoke the function by name.
//
// Fn is stateless and declares no entry points or dependencies of its own;
// combine with WithStateType, WithPushEval, WithPullEval or WithDeps to add
// those capabilities.
type Fn struct {
	Base
	decl *ast.FuncDecl
	src  string
}

// NewFn parses a node from a function declaration source, e.g.
// "func add(l, r int) int { return l + r }".
func NewFn(src string) (*Fn, error) {
	decl, err := ParseFunc(src)
	if err != nil {
		return nil, err
	}
	return &Fn{decl: decl, src: src}, nil
}

// MustFn is NewFn for function sources known at compile time.
// It panics on malformed input.
func MustFn(src string) *Fn {
	fn, err := NewFn(src)
	if err != nil {
		panic(err)
	}
	return fn
}

// Decl returns the parsed declaration. Callers must not mutate it.
func (f *Fn) Decl() *ast.FuncDecl { return f.decl }

// Evaluator returns the function-based evaluator for the declaration.
func (f *Fn) Evaluator() Evaluator {
	return FnEvaluator{Decl: f.decl}
}

// KindFn is the registry kind under which Fn nodes serialize.
const KindFn = "fn"

type sourcePayload struct {
	Source string `json:"source"`
}

// Kind implements Marshaler.
func (f *Fn) Kind() string { return KindFn }

// MarshalDef implements Marshaler by emitting the declaration source.
func (f *Fn) MarshalDef() (json.RawMessage, error) {
	return json.Marshal(sourcePayload{Source: f.src})
}

func decodeFn(_ *Registry, data json.RawMessage) (Node, error) {
	var payload sourcePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return NewFn(payload.Source)
}
