// Package node defines the contract a computational unit must satisfy to be
// composed into a generated Go program.
//
// A node declares its inputs and outputs, an evaluation strategy for turning
// input expressions into an output expression, optional entry points for
// triggering evaluation from outside the generated program, an optional
// persistent-state requirement, and the external modules its generated code
// depends on. A graph assembler queries these descriptors to wire nodes
// together and emit one program; this package never executes anything itself.
package node

import "go/ast"

// StateBinding is the reserved identifier under which code generation makes a
// node's mutable state available to its synthesized call expression.
//
// When a node declares a StateType, the assembler guarantees a local binding
// with this name is in scope at the node's call site.
const StateBinding = "state"

// Node is the capability contract every node kind implements.
//
// Nodes are a way to abstract and encapsulate logic into smaller, re-usable
// components, similar to a function in hand-written code. Every node is made
// up of:
//   - Any number of inputs, each of some Go type or a type left to inference.
//   - Any number of outputs.
//   - An evaluation strategy that takes the inputs as arguments and produces
//     the outputs (via multiple return values when there is more than one).
//
// Only Evaluator is mandatory; embed Base to pick up defaults for the rest.
// All operations are pure queries: they never mutate the node, perform I/O,
// or block, and may be called any number of times with identical results.
type Node interface {
	// Evaluator identifies how this node turns inputs into outputs.
	//
	// This is either a function or an expression generator. The key
	// difference is that a function's input and output types are known
	// before assembly begins, which lets the generator produce more modular
	// code and better diagnostics, while raw expressions are more ergonomic
	// for the implementer because types are not resolved until the emitted
	// program is compiled.
	Evaluator() Evaluator

	// PushEval, when non-nil, requests that the assembler generate a
	// function with the returned shape that pushes evaluation forward from
	// this node. Push evaluation order is a topological ordering of the
	// connected component starting at this node.
	//
	// The returned EvalFn must have no results; the assembler rejects any
	// other shape before code generation.
	//
	// Nil means no push entry point.
	PushEval() *EvalFn

	// PullEval, when non-nil, requests that the assembler generate a
	// function with the returned shape that pulls evaluation into this
	// node, evaluating upstream dependencies first in topological order.
	//
	// The returned EvalFn must have no results; the assembler rejects any
	// other shape before code generation.
	//
	// Nil means no pull entry point.
	PullEval() *EvalFn

	// StateType, when non-nil, declares that this node requires access to
	// persistent state of the returned type while evaluating. Code
	// generation ensures a binding named StateBinding of that type is in
	// scope for the node's call expression.
	//
	// Nil means the node is stateless.
	StateType() ast.Expr

	// Deps lists external modules that must be in scope for code generated
	// from this node. Duplicate descriptors across a graph are collapsed
	// when the assembler builds the program manifest.
	//
	// An empty or nil slice means no dependencies.
	Deps() []Dep
}

// Base provides the default answers for every optional Node operation:
// no push entry point, no pull entry point, stateless, and no dependencies.
//
// Embed it so a minimal node only has to define Evaluator:
//
//	type double struct{ node.Base }
//
//	func (double) Evaluator() node.Evaluator {
//	    return node.ExprEvaluator{Gen: ..., Inputs: 1, Outputs: 1}
//	}
type Base struct{}

// PushEval returns nil: no push entry point.
func (Base) PushEval() *EvalFn { return nil }

// PullEval returns nil: no pull entry point.
func (Base) PullEval() *EvalFn { return nil }

// StateType returns nil: the node is stateless.
func (Base) StateType() ast.Expr { return nil }

// Deps returns nil: no external modules required.
func (Base) Deps() []Dep { return nil }

// Forward delegates the full Node contract to the wrapped value.
//
// Graph containers hold heterogeneous node kinds behind plain Node interface
// values; Forward exists for adapters that need a concrete struct to hang
// extra fields or methods on while leaving every contract operation
// untouched. Wrapping any node in Forward is observationally identical to
// using the node directly.
type Forward struct {
	Node
}
