package node

import (
	"go/ast"
	"testing"
)

// constNode is the minimal conforming node: only Evaluator is defined and
// Base supplies every default.
type constNode struct {
	Base
}

func (constNode) Evaluator() Evaluator {
	return ExprEvaluator{
		Gen:     func([]ast.Expr) ast.Expr { return ast.NewIdent("one") },
		Inputs:  0,
		Outputs: 1,
	}
}

// TestDefaults verifies the defaults of a minimal node: no push entry point,
// no pull entry point, stateless, and no dependencies.
func TestDefaults(t *testing.T) {
	var n Node = constNode{}

	if got := n.PushEval(); got != nil {
		t.Errorf("PushEval() = %v, want nil", got)
	}
	if got := n.PullEval(); got != nil {
		t.Errorf("PullEval() = %v, want nil", got)
	}
	if got := n.StateType(); got != nil {
		t.Errorf("StateType() = %v, want nil", got)
	}
	if got := n.Deps(); len(got) != 0 {
		t.Errorf("Deps() = %v, want empty", got)
	}
}

// fullCapability builds a node exercising every optional operation, for
// delegation tests.
func fullCapability(t *testing.T) Node {
	t.Helper()
	n := Node(MustFn("func count() int { return 0 }"))
	n = WithPushEval(n, MustEvalFn("func push_count()"))
	n = WithPullEval(n, MustEvalFn("func pull_count()"))
	n = WithStateType(n, MustTypeExpr("int"))
	n = WithDeps(n, MustDep("foo = 0.10"))
	return n
}

// sameContract fails the test unless every contract operation of got matches
// want.
func sameContract(t *testing.T, got, want Node) {
	t.Helper()

	ge, we := got.Evaluator(), want.Evaluator()
	if ge.NInputs() != we.NInputs() || ge.NOutputs() != we.NOutputs() {
		t.Errorf("Evaluator() arity = (%d, %d), want (%d, %d)", ge.NInputs(), ge.NOutputs(), we.NInputs(), we.NOutputs())
	}
	if gp, wp := got.PushEval(), want.PushEval(); (gp == nil) != (wp == nil) || (gp != nil && !gp.Equal(*wp)) {
		t.Errorf("PushEval() = %v, want %v", gp, wp)
	}
	if gp, wp := got.PullEval(), want.PullEval(); (gp == nil) != (wp == nil) || (gp != nil && !gp.Equal(*wp)) {
		t.Errorf("PullEval() = %v, want %v", gp, wp)
	}
	gs, ws := got.StateType(), want.StateType()
	if (gs == nil) != (ws == nil) || (gs != nil && SprintExpr(gs) != SprintExpr(ws)) {
		t.Errorf("StateType() = %v, want %v", gs, ws)
	}
	gd, wd := got.Deps(), want.Deps()
	if len(gd) != len(wd) {
		t.Fatalf("Deps() = %v, want %v", gd, wd)
	}
	for i := range gd {
		if gd[i] != wd[i] {
			t.Errorf("Deps()[%d] = %v, want %v", i, gd[i], wd[i])
		}
	}
}

// TestDelegation verifies that interface indirection and the Forward wrapper
// answer every contract operation identically to the underlying node.
func TestDelegation(t *testing.T) {
	direct := fullCapability(t)

	t.Run("interface value", func(t *testing.T) {
		var n Node = direct
		sameContract(t, n, direct)
	})

	t.Run("forward wrapper", func(t *testing.T) {
		sameContract(t, Forward{Node: direct}, direct)
	})

	t.Run("nested forward", func(t *testing.T) {
		sameContract(t, Forward{Node: Forward{Node: direct}}, direct)
	})

	t.Run("pointer to value implementation", func(t *testing.T) {
		v := constNode{}
		sameContract(t, &v, v)
	})
}

// TestHeterogeneousCollection verifies that mixed node kinds can be stored
// and queried behind one handle type.
func TestHeterogeneousCollection(t *testing.T) {
	nodes := []Node{
		constNode{},
		MustFn("func add(l, r int) int { return l + r }"),
		MustExpr("#l + #r"),
		Forward{Node: MustExpr("#x * #x")},
	}

	wantInputs := []uint32{0, 2, 2, 1}
	for i, n := range nodes {
		if got := n.Evaluator().NInputs(); got != wantInputs[i] {
			t.Errorf("nodes[%d].Evaluator().NInputs() = %d, want %d", i, got, wantInputs[i])
		}
	}
}
