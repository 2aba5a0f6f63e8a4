package node

// WithPullEval wraps a node so that it requests a pull-evaluation entry
// point with the given shape. Every other contract operation is forwarded
// to the inner node unchanged.
//
// Entry points must return nothing; a descriptor with results is a contract
// violation and panics here, before it can reach code generation.
func WithPullEval(n Node, fn EvalFn) Node {
	if !fn.ReturnsUnit() {
		panic("node: pull entry point " + fn.String() + " must not declare results")
	}
	return &pullNode{Node: n, fn: fn}
}

type pullNode struct {
	Node
	fn EvalFn
}

func (p *pullNode) PullEval() *EvalFn {
	fn := p.fn
	return &fn
}
