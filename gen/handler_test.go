package gen

import (
	stderrors "errors"
	"testing"

	"github.com/kbukum/xgen/errors"
)

func TestDrive_VoidHandler(t *testing.T) {
	var got []int
	ok, err := Drive(Of(1, 2, 3), func(v int) { got = append(got, v) })
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("a void handler always reports true")
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestDrive_VoidHandlerRejectsInfinite(t *testing.T) {
	called := false
	ok, err := Drive(CountFrom(0, 1), func(int) { called = true })
	if ok || err == nil {
		t.Fatalf("expected rejection, got ok=%v err=%v", ok, err)
	}
	if !stderrors.Is(err, ErrInfiniteSequence) {
		t.Errorf("expected ErrInfiniteSequence, got %v", err)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestDrive_StopHandler(t *testing.T) {
	var seen []int
	ok, err := Drive(Of(1, 2, 3, 4, 5), func(v int) bool {
		seen = append(seen, v)
		return v <= 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected false")
	}
	if !intSliceEqual(seen, []int{1, 2, 3, 4}) {
		t.Errorf("got %v", seen)
	}
}

func TestDrive_StopHandlerOnInfinite(t *testing.T) {
	var seen []int
	ok, err := Drive(CountFrom(1, 1), func(v int) bool {
		seen = append(seen, v)
		return v < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if ok || !intSliceEqual(seen, []int{1, 2, 3}) {
		t.Errorf("got ok=%v seen=%v", ok, seen)
	}
}

func TestDrive_Incompatible(t *testing.T) {
	handlers := map[string]any{
		"wrong arg":    func(string) bool { return true },
		"wrong result": func(int) int { return 0 },
		"not a func":   42,
		"nil":          nil,
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			_, err := Drive(Of(1), h)
			if !errors.HasCode(err, errors.ErrCodeIncompatibleHandler) {
				t.Errorf("expected INCOMPATIBLE_HANDLER, got %v", err)
			}
			if !stderrors.Is(err, ErrIncompatibleHandler) {
				t.Error("expected error to match ErrIncompatibleHandler")
			}
		})
	}
}

func TestBind_ReflectiveShapes(t *testing.T) {
	var seen []any
	fn, contract, err := Bind[int](func(v any) bool {
		seen = append(seen, v)
		return v.(int) < 2
	})
	if err != nil {
		t.Fatal(err)
	}
	if contract != ContractStop {
		t.Errorf("got %s", contract)
	}
	if ok := Of(1, 2, 3).Apply(fn); ok {
		t.Error("expected stop at 2")
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("got %v", seen)
	}

	total := 0
	vfn, contract, err := Bind[int](func(vs ...int) {
		for _, v := range vs {
			total += v
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if contract != ContractVoid {
		t.Errorf("got %s", contract)
	}
	if ok := Of(1, 2, 3).Apply(vfn); !ok || total != 6 {
		t.Errorf("got ok=%v total=%d", ok, total)
	}

	named, contract, err := Bind[int](keepFunc(func(v int) bool { return v != 2 }))
	if err != nil || contract != ContractStop {
		t.Fatalf("named func type: contract=%s err=%v", contract, err)
	}
	var kept []int
	Of(1, 2, 3).Apply(func(v int) bool {
		kept = append(kept, v)
		return named(v)
	})
	if !intSliceEqual(kept, []int{1, 2}) {
		t.Errorf("got %v", kept)
	}
}
