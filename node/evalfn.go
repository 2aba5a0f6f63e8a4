package node

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"strings"
)

// EvalFn describes the externally callable shape of a generated entry-point
// function: its name, signature and any attached attributes. It carries no
// body; the assembler generates one per node that signals push or pull
// evaluation.
//
// Note that the assembler appends one extra parameter to every generated
// entry-point signature carrying the collection of per-node states, so that
// state can be threaded down the generated call chain without global
// storage. That parameter is an assembly concern and never appears here.
//
// EvalFn values are value-equal via Equal; use Key for map keys.
type EvalFn struct {
	// Name of the generated function.
	Name string

	// Sig is the declared function signature.
	Sig *ast.FuncType

	// Attrs are attribute comment lines attached to the generated
	// function, e.g. "//go:noinline" or "//export step".
	Attrs []string
}

// NewEvalFn parses an entry-point descriptor from a Go function declaration
// such as "func push_all()". The body, if any, is discarded. Comment lines
// immediately preceding the declaration become Attrs.
func NewEvalFn(src string) (EvalFn, error) {
	decl, err := ParseFunc(src)
	if err != nil {
		return EvalFn{}, err
	}
	fn := EvalFn{Name: decl.Name.Name, Sig: decl.Type}
	if decl.Doc != nil {
		for _, c := range decl.Doc.List {
			fn.Attrs = append(fn.Attrs, c.Text)
		}
	}
	return fn, nil
}

// MustEvalFn is NewEvalFn for descriptor literals known at compile time.
// It panics on malformed input.
func MustEvalFn(src string) EvalFn {
	fn, err := NewEvalFn(src)
	if err != nil {
		panic(err)
	}
	return fn
}

// ReturnsUnit reports whether the signature declares no results. Push and
// pull entry points must return nothing; WithPushEval and WithPullEval
// enforce this.
func (f EvalFn) ReturnsUnit() bool {
	return f.Sig == nil || countFields(f.Sig.Results) == 0
}

// String renders the descriptor as a bodyless Go function declaration,
// e.g. "func push_all()".
func (f EvalFn) String() string {
	decl := &ast.FuncDecl{Name: ast.NewIdent(f.Name), Type: f.Sig}
	return SprintExpr(decl)
}

// Key returns the canonical textual form of the descriptor: attribute lines
// followed by the rendered declaration. Two descriptors are equal iff their
// keys are equal, so Key is suitable as a map key where EvalFn values need
// set or hash semantics.
func (f EvalFn) Key() string {
	if len(f.Attrs) == 0 {
		return f.String()
	}
	return strings.Join(f.Attrs, "\n") + "\n" + f.String()
}

// Equal reports whether two descriptors have structurally equal names,
// signatures and attributes.
func (f EvalFn) Equal(other EvalFn) bool {
	return f.Key() == other.Key()
}

// MarshalJSON encodes the descriptor as its canonical source text.
func (f EvalFn) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Key())
}

// UnmarshalJSON decodes a descriptor from its canonical source text.
func (f *EvalFn) UnmarshalJSON(data []byte) error {
	var src string
	if err := json.Unmarshal(data, &src); err != nil {
		return fmt.Errorf("node: decode eval fn: %w", err)
	}
	fn, err := NewEvalFn(src)
	if err != nil {
		return err
	}
	*f = fn
	return nil
}
