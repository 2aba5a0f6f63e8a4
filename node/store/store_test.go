package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/graphgen-go/node"
)

// testStoreContract exercises the Store behavior every implementation must
// share.
func testStoreContract(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	addDef, err := node.Encode(node.MustFn("func add(l, r int) int { return l + r }"))
	if err != nil {
		t.Fatalf("encode fn: %v", err)
	}
	mulDef, err := node.Encode(node.MustExpr("#l * #r"))
	if err != nil {
		t.Fatalf("encode expr: %v", err)
	}

	t.Run("load missing", func(t *testing.T) {
		if _, err := st.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		if err := st.Save(ctx, "add", addDef); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := st.Load(ctx, "add")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got.Kind != addDef.Kind || string(got.Data) != string(addDef.Data) {
			t.Errorf("Load = %+v, want %+v", got, addDef)
		}

		// A loaded definition must decode back into a working node.
		decoded, err := node.DefaultRegistry().Decode(got)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if decoded.Evaluator().NInputs() != 2 {
			t.Error("decoded node lost its arity")
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := st.Save(ctx, "add", mulDef); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := st.Load(ctx, "add")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got.Kind != node.KindExpr {
			t.Errorf("Kind after overwrite = %q, want %q", got.Kind, node.KindExpr)
		}
	})

	t.Run("list sorted", func(t *testing.T) {
		if err := st.Save(ctx, "mul", mulDef); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := st.Save(ctx, "abs", addDef); err != nil {
			t.Fatalf("Save: %v", err)
		}
		names, err := st.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		want := []string{"abs", "add", "mul"}
		if len(names) != len(want) {
			t.Fatalf("List = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := st.Delete(ctx, "abs"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := st.Load(ctx, "abs"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load after delete error = %v, want ErrNotFound", err)
		}
		if err := st.Delete(ctx, "abs"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Delete error = %v, want ErrNotFound", err)
		}
	})
}
