package node

// WithPushEval wraps a node so that it requests a push-evaluation entry
// point with the given shape. Every other contract operation is forwarded
// to the inner node unchanged.
//
// Entry points must return nothing; a descriptor with results is a contract
// violation and panics here, before it can reach code generation.
func WithPushEval(n Node, fn EvalFn) Node {
	if !fn.ReturnsUnit() {
		panic("node: push entry point " + fn.String() + " must not declare results")
	}
	return &pushNode{Node: n, fn: fn}
}

type pushNode struct {
	Node
	fn EvalFn
}

func (p *pushNode) PushEval() *EvalFn {
	fn := p.fn
	return &fn
}
