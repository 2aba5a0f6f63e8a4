package node

import (
	"encoding/json"
	"testing"
)

// TestNewEvalFn verifies descriptor parsing from a bodyless declaration.
func TestNewEvalFn(t *testing.T) {
	fn, err := NewEvalFn("func push_all()")
	if err != nil {
		t.Fatalf("NewEvalFn error: %v", err)
	}
	if fn.Name != "push_all" {
		t.Errorf("Name = %q, want %q", fn.Name, "push_all")
	}
	if !fn.ReturnsUnit() {
		t.Error("ReturnsUnit() = false, want true")
	}
	if got := fn.String(); got != "func push_all()" {
		t.Errorf("String() = %q, want %q", got, "func push_all()")
	}
}

// TestNewEvalFnMalformed verifies parse errors are reported, not panicked.
func TestNewEvalFnMalformed(t *testing.T) {
	if _, err := NewEvalFn("func ("); err == nil {
		t.Error("expected error for malformed signature")
	}
}

// TestEvalFnAttrs verifies comment lines preceding the declaration become
// attributes.
func TestEvalFnAttrs(t *testing.T) {
	fn := MustEvalFn("//go:noinline\nfunc step()")
	if len(fn.Attrs) != 1 || fn.Attrs[0] != "//go:noinline" {
		t.Errorf("Attrs = %v, want [//go:noinline]", fn.Attrs)
	}
}

// TestEvalFnReturnsUnit verifies the unit-return predicate across result
// shapes.
func TestEvalFnReturnsUnit(t *testing.T) {
	tests := []struct {
		src  string
		unit bool
	}{
		{"func f()", true},
		{"func f(a int, b string)", true},
		{"func f() int", false},
		{"func f() (int, error)", false},
	}
	for _, tt := range tests {
		if got := MustEvalFn(tt.src).ReturnsUnit(); got != tt.unit {
			t.Errorf("ReturnsUnit(%q) = %v, want %v", tt.src, got, tt.unit)
		}
	}
}

// TestEvalFnEquality verifies structural equality over name, signature and
// attributes.
func TestEvalFnEquality(t *testing.T) {
	base := MustEvalFn("func run(n int)")

	if !base.Equal(MustEvalFn("func run(n int)")) {
		t.Error("identical descriptors not equal")
	}
	for _, other := range []string{
		"func walk(n int)",               // different name
		"func run(n string)",             // different signature
		"//go:noinline\nfunc run(n int)", // different attrs
	} {
		if base.Equal(MustEvalFn(other)) {
			t.Errorf("Equal(%q) = true, want false", other)
		}
	}
}

// TestEvalFnKey verifies Key gives set semantics for descriptors.
func TestEvalFnKey(t *testing.T) {
	set := map[string]EvalFn{}
	for _, src := range []string{"func a()", "func b()", "func a()"} {
		fn := MustEvalFn(src)
		set[fn.Key()] = fn
	}
	if len(set) != 2 {
		t.Errorf("distinct keys = %d, want 2", len(set))
	}
}

// TestEvalFnJSON verifies descriptors survive a JSON round trip.
func TestEvalFnJSON(t *testing.T) {
	orig := MustEvalFn("//go:noinline\nfunc step(delta float64)")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded EvalFn
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(orig) {
		t.Errorf("round trip = %v, want %v", decoded.Key(), orig.Key())
	}
}

// TestEvalFnJSONMalformed verifies decode failures surface as errors.
func TestEvalFnJSONMalformed(t *testing.T) {
	var fn EvalFn
	if err := json.Unmarshal([]byte(`"not a signature"`), &fn); err == nil {
		t.Error("expected error decoding malformed descriptor")
	}
	if err := json.Unmarshal([]byte(`42`), &fn); err == nil {
		t.Error("expected error decoding non-string descriptor")
	}
}
