package node

import "go/ast"

// WithStateType wraps a node so that it declares a persistent state slot of
// the given type. Code generation will keep one value of that type per node
// instance and make it available to the node's synthesized expression under
// the reserved StateBinding name. Every other contract operation is
// forwarded to the inner node unchanged.
//
// A nil type panics: wrapping a node in state it does not declare a type for
// is a wiring bug, not a way to express statelessness.
func WithStateType(n Node, ty ast.Expr) Node {
	if ty == nil {
		panic("node: WithStateType requires a non-nil state type")
	}
	return &stateNode{Node: n, ty: ty}
}

type stateNode struct {
	Node
	ty ast.Expr
}

func (s *stateNode) StateType() ast.Expr { return s.ty }
