package node

import (
	"fmt"
	"go/ast"
)

// Evaluator is a node's strategy for turning argument expressions into one
// expression that evaluates to the node's outputs.
//
// The declared input and output counts are fixed for the lifetime of the
// node and always match what Expr consumes and produces.
type Evaluator interface {
	// NInputs is the number of inputs to the node.
	NInputs() uint32

	// NOutputs is the number of outputs of the node.
	NOutputs() uint32

	// Expr synthesizes the expression that evaluates this node given the
	// argument expressions for its inputs.
	//
	// stateful reports whether the call site has the node's state binding
	// in scope. How state reaches the expression depends on the evaluator
	// kind; see FnEvaluator and ExprEvaluator.
	//
	// Supplying an argument count that differs from NInputs to a function
	// evaluator is a wiring bug in the caller and panics.
	Expr(args []ast.Expr, stateful bool) ast.Expr
}

// FnEvaluator evaluates a node through a fully typed function declaration.
//
// Knowing the types of a node's inputs and outputs lets the assembler
// generate more modular code and report better diagnostics, and makes call
// synthesis mechanical: the node's inputs are the function's parameters and
// its outputs are the function's results.
type FnEvaluator struct {
	// Decl is a free-standing function declaration, including its name,
	// signature, body and any doc comments.
	Decl *ast.FuncDecl
}

// NInputs returns the number of declared parameters, counting each name in a
// shared-type group separately (func f(a, b int) has two inputs).
func (f FnEvaluator) NInputs() uint32 {
	return countFields(f.Decl.Type.Params)
}

// NOutputs returns 0 when the function has no results, otherwise the number
// of declared results. A multi-value return of arity m counts as m outputs.
func (f FnEvaluator) NOutputs() uint32 {
	return countFields(f.Decl.Type.Results)
}

// Expr synthesizes a call of the declared function with the supplied
// arguments. If stateful is true, one trailing argument referencing the
// reserved StateBinding identifier is appended after the declared arguments.
//
// The number of supplied arguments must equal NInputs exactly; a mismatch
// means the caller mis-wired the graph and panics rather than truncating or
// padding.
func (f FnEvaluator) Expr(args []ast.Expr, stateful bool) ast.Expr {
	if got, want := uint32(len(args)), f.NInputs(); got != want {
		panic(fmt.Sprintf("node: function %q declares %d inputs, expression requested with %d arguments", f.Decl.Name.Name, want, got))
	}
	call := &ast.CallExpr{Fun: ast.NewIdent(f.Decl.Name.Name)}
	call.Args = append(call.Args, args...)
	if stateful {
		call.Args = append(call.Args, ast.NewIdent(StateBinding))
	}
	return call
}

// GenExprFunc produces a node's expression from its argument expressions.
//
// Generators are opaque to this layer: no type information is required until
// the emitted program is compiled. A generator should be a pure function of
// its arguments and whatever it closed over at construction.
type GenExprFunc func(args []ast.Expr) ast.Expr

// ExprEvaluator evaluates a node through an opaque expression generator.
//
// Expression nodes do not need to know the concrete types of their inputs or
// outputs, which simplifies implementing Node at the cost of weaker
// diagnostics. Input and output counts are declared explicitly and are
// authoritative.
type ExprEvaluator struct {
	// Gen produces the node's expression from its argument expressions.
	Gen GenExprFunc

	// Inputs is the number of inputs to the expression.
	Inputs uint32

	// Outputs is the number of outputs of the expression.
	Outputs uint32
}

// NInputs returns the declared input count.
func (e ExprEvaluator) NInputs() uint32 { return e.Inputs }

// NOutputs returns the declared output count.
func (e ExprEvaluator) NOutputs() uint32 { return e.Outputs }

// Expr invokes the generator with the supplied arguments.
//
// No implicit state argument is appended for stateful nodes: the shape of an
// expression node's output is generator-defined rather than call-based, so a
// stateful generator must reference StateBinding itself.
func (e ExprEvaluator) Expr(args []ast.Expr, _ bool) ast.Expr {
	return e.Gen(args)
}

// countFields counts the bindings in a parameter or result list, treating a
// nil list as empty. A field with grouped names (a, b int) contributes one
// per name; an unnamed field contributes one.
func countFields(fl *ast.FieldList) uint32 {
	if fl == nil {
		return 0
	}
	var n uint32
	for _, field := range fl.List {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += uint32(len(field.Names))
	}
	return n
}
