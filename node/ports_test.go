package node

import "testing"

// TestPortIndices verifies inputs and outputs behave as ordered indices and
// as map keys.
func TestPortIndices(t *testing.T) {
	if Input(2) != Input(2) {
		t.Error("equal inputs compare unequal")
	}
	if !(Input(1) < Input(2)) {
		t.Error("inputs are not ordered")
	}

	// Distinct key types never collide in a composite key.
	type conn struct {
		out Output
		in  Input
	}
	wires := map[conn]bool{
		{Output(2), Input(2)}: true,
		{Output(2), Input(3)}: true,
	}
	if len(wires) != 2 {
		t.Errorf("map has %d entries, want 2", len(wires))
	}
}

// TestPortStrings verifies the generated-code spellings of port indices.
func TestPortStrings(t *testing.T) {
	if got := Input(0).String(); got != "in0" {
		t.Errorf("Input(0).String() = %q, want %q", got, "in0")
	}
	if got := Output(7).String(); got != "out7" {
		t.Errorf("Output(7).String() = %q, want %q", got, "out7")
	}
}
