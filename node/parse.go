package node

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// funcCache memoizes ParseFunc results keyed by source text. Interactive
// front-ends re-query node descriptors continuously with identical sources,
// so parsing the same declaration per query is wasted work. Cached
// declarations are shared; callers must treat them as immutable, which the
// whole package already requires.
var funcCache, _ = lru.New[string, *ast.FuncDecl](256)

// ParseFunc parses a single free-standing Go function declaration from src,
// e.g. "func add(l, r int) int { return l + r }". Bodyless declarations such
// as "func push_all()" are accepted. Doc comments, including //go:
// directives, are retained on the returned declaration.
//
// Results are memoized, so repeated calls with the same source are cheap.
func ParseFunc(src string) (*ast.FuncDecl, error) {
	if decl, ok := funcCache.Get(src); ok {
		return decl, nil
	}
	file := "package p\n\n" + src
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, "node.go", file, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("node: parse function: %w", err)
	}
	for _, decl := range parsed.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok {
			funcCache.Add(src, fd)
			return fd, nil
		}
	}
	return nil, fmt.Errorf("node: parse function: no function declaration in %q", src)
}

// ParseTypeExpr parses a Go type expression from src, e.g. "int",
// "[]float64" or "map[string]int". Useful for building StateType values.
func ParseTypeExpr(src string) (ast.Expr, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("node: parse type: %w", err)
	}
	return expr, nil
}

// MustTypeExpr is ParseTypeExpr for type literals known at compile time.
// It panics on malformed input.
func MustTypeExpr(src string) ast.Expr {
	expr, err := ParseTypeExpr(src)
	if err != nil {
		panic(err)
	}
	return expr
}

// SprintExpr renders an AST node back to Go source text. The result for
// nodes built by this package is a single line.
func SprintExpr(n ast.Node) string {
	var sb strings.Builder
	_ = printer.Fprint(&sb, token.NewFileSet(), n)
	return sb.String()
}
