package gen

import (
	"math"
	"slices"
	"testing"

	"github.com/kbukum/xgen/errors"
)

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// observe drives s with an always-true handler and records what it saw.
func observe[T any](s Sequence[T]) ([]T, bool) {
	var got []T
	ok := s.Apply(func(v T) bool {
		got = append(got, v)
		return true
	})
	return got, ok
}

func finiteSources() map[string]Sequence[int] {
	return map[string]Sequence[int]{
		"of":        Of(1, 2, 3, 4, 5),
		"slice":     FromSlice([]int{10, 20, 30}),
		"range":     Range(0, 10, 3),
		"desc":      Range(5, 0, -1),
		"repeat":    Repeat(7, 4),
		"single":    Of(42),
		"take":      Pipe(CountFrom(1, 1), Take[int](6)),
		"concat":    Concat(Of(1, 2), Range(3, 6, 1)),
		"from func": FromFunc(func(yield func(int) bool) bool { return yield(1) && yield(2) }, false),
	}
}

func TestApply_VisitsEveryElementOnce(t *testing.T) {
	want := map[string][]int{
		"of":        {1, 2, 3, 4, 5},
		"slice":     {10, 20, 30},
		"range":     {0, 3, 6, 9},
		"desc":      {5, 4, 3, 2, 1},
		"repeat":    {7, 7, 7, 7},
		"single":    {42},
		"take":      {1, 2, 3, 4, 5, 6},
		"concat":    {1, 2, 3, 4, 5},
		"from func": {1, 2},
	}
	for name, s := range finiteSources() {
		t.Run(name, func(t *testing.T) {
			got, ok := observe(s)
			if !ok {
				t.Error("expected Apply to return true for a full pass")
			}
			if !intSliceEqual(got, want[name]) {
				t.Errorf("got %v, want %v", got, want[name])
			}
		})
	}
}

func TestApply_StopAtEveryIndex(t *testing.T) {
	for name, s := range finiteSources() {
		all, _ := observe(s)
		for k := 1; k <= len(all); k++ {
			calls := 0
			ok := s.Apply(func(int) bool {
				calls++
				return calls != k
			})
			if ok {
				t.Errorf("%s: stop at call %d: expected Apply to return false", name, k)
			}
			if calls != k {
				t.Errorf("%s: stop at call %d: handler called %d times", name, k, calls)
			}
		}
	}
}

func TestApply_Restartable(t *testing.T) {
	for name, s := range finiteSources() {
		first, _ := observe(s)
		s.Apply(func(int) bool { return false })
		second, _ := observe(s)
		if !intSliceEqual(first, second) {
			t.Errorf("%s: second pass %v differs from first %v", name, second, first)
		}
	}
}

func TestApply_Empty(t *testing.T) {
	empties := map[string]Sequence[int]{
		"empty":       Empty[int](),
		"of":          Of[int](),
		"nil slice":   FromSlice[int](nil),
		"zero step":   Range(0, 10, 0),
		"wrong dir":   Range(10, 0, 1),
		"repeat zero": Repeat(1, 0),
	}
	for name, s := range empties {
		t.Run(name, func(t *testing.T) {
			called := false
			ok := s.Apply(func(int) bool {
				called = true
				return true
			})
			if !ok {
				t.Error("expected true for an empty sequence")
			}
			if called {
				t.Error("handler must not be called")
			}
		})
	}
}

func TestApply_SingleElementStop(t *testing.T) {
	calls := 0
	ok := Of(1).Apply(func(int) bool {
		calls++
		return false
	})
	if ok || calls != 1 {
		t.Errorf("got ok=%v calls=%d, want false and 1", ok, calls)
	}
}

func TestInfiniteSources(t *testing.T) {
	sources := map[string]Sequence[int]{
		"count":    CountFrom(0, 2),
		"forever":  Forever(3),
		"generate": Generate(func(i int) int { return i * i }),
		"iterate":  Iterate(1, func(x int) int { return x * 2 }),
		"func": FromFunc(func(yield func(int) bool) bool {
			for yield(0) {
			}
			return false
		}, true),
	}
	want := map[string][]int{
		"count":    {0, 2, 4, 6},
		"forever":  {3, 3, 3, 3},
		"generate": {0, 1, 4, 9},
		"iterate":  {1, 2, 4, 8},
		"func":     {0, 0, 0, 0},
	}
	for name, s := range sources {
		t.Run(name, func(t *testing.T) {
			if !s.Infinite() {
				t.Fatal("expected Infinite() == true")
			}
			var got []int
			ok := Run(s, func(v int) bool {
				got = append(got, v)
				return len(got) < 4
			})
			if ok {
				t.Error("an infinite sequence only ends through a stop")
			}
			if !intSliceEqual(got, want[name]) {
				t.Errorf("got %v, want %v", got, want[name])
			}
		})
	}
}

func TestForEach(t *testing.T) {
	var got []int
	if err := ForEach(Of(1, 2, 3), func(v int) { got = append(got, v) }); err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestForEach_RejectsInfinite(t *testing.T) {
	called := false
	err := ForEach(CountFrom(0, 1), func(int) { called = true })
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.HasCode(err, errors.ErrCodeInfiniteSequence) {
		t.Errorf("expected INFINITE_SEQUENCE, got %v", err)
	}
	if called {
		t.Error("body must not run for a rejected sequence")
	}
}

func TestStopFromValue(t *testing.T) {
	var seen []int
	ok := Run(Of(1, 2, 3, 4, 5), func(v int) bool {
		seen = append(seen, v)
		return v <= 3
	})
	if ok {
		t.Error("expected false")
	}
	if !intSliceEqual(seen, []int{1, 2, 3, 4}) {
		t.Errorf("got %v, want [1 2 3 4]", seen)
	}
}

func TestFromSeq_And_Iter(t *testing.T) {
	s := FromSeq(Iter(Of(1, 2, 3)), false)
	got, ok := observe(s)
	if !ok || !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v ok=%v", got, ok)
	}

	var ranged []int
	for v := range Iter(CountFrom(5, 5)) {
		if v > 20 {
			break
		}
		ranged = append(ranged, v)
	}
	if !intSliceEqual(ranged, []int{5, 10, 15, 20}) {
		t.Errorf("range over Iter: got %v", ranged)
	}

	if FromSeq(Iter(Forever(1)), true).Infinite() != true {
		t.Error("FromSeq should keep the declared infinite flag")
	}
}

func TestRange_Unsigned(t *testing.T) {
	got, _ := observe(Range[uint8](250, 255, 2))
	want := []uint8{250, 252, 254}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

// widen collects at most limit elements of s as int64, so a range that
// fails to end shows up as an over-long result instead of a hang.
func widen[T Integer](s Sequence[T], limit int) []int64 {
	var got []int64
	s.Apply(func(v T) bool {
		got = append(got, int64(v))
		return len(got) < limit
	})
	return got
}

func TestRange_IntegerEdges(t *testing.T) {
	tests := []struct {
		name     string
		got      []int64
		expected []int64
	}{
		{"int8 across zero", widen(Range[int8](-100, 100, 50), 10), []int64{-100, -50, 0, 50}},
		{"int8 full span", widen(Range[int8](-128, 127, 127), 10), []int64{-128, -1, 126}},
		{"int8 up to max", widen(Range[int8](120, 127, 5), 10), []int64{120, 125}},
		{"int8 min step", widen(Range[int8](127, -128, -128), 10), []int64{127, -1}},
		{"int8 down to min", widen(Range[int8](-120, -128, -5), 10), []int64{-120, -125}},
		{"int64 full span", widen(Range[int64](math.MinInt64, math.MaxInt64, math.MaxInt64), 10),
			[]int64{math.MinInt64, -1, math.MaxInt64 - 1}},
		{"int64 min step", widen(Range[int64](math.MaxInt64, math.MinInt64, math.MinInt64), 10),
			[]int64{math.MaxInt64, -1}},
		{"int64 near max", widen(Range[int64](math.MaxInt64-3, math.MaxInt64, 2), 10),
			[]int64{math.MaxInt64 - 3, math.MaxInt64 - 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !slices.Equal(tc.got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, tc.got)
			}
		})
	}
}

func TestRange_UnsignedEdges(t *testing.T) {
	got, ok := observe(Range[uint8](0, 255, 200))
	if !ok || !slices.Equal(got, []uint8{0, 200}) {
		t.Errorf("expected [0 200], got %v (completed=%v)", got, ok)
	}
	got64, _ := observe(Range[uint64](math.MaxUint64-2, math.MaxUint64, 1))
	if !slices.Equal(got64, []uint64{math.MaxUint64 - 2, math.MaxUint64 - 1}) {
		t.Errorf("unexpected uint64 range %v", got64)
	}
}
