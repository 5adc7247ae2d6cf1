package jval

import "testing"

func TestArrayAppendGrowsLength(t *testing.T) {
	a := Array()
	a = ArrayAppend(a, Number(1))
	a = ArrayAppend(a, Number(2))

	if got := ArrayLength(a); got != 2 {
		t.Fatalf("ArrayLength = %d, want 2", got)
	}
	if v := ArrayGet(a, 0); ValueAsDouble(v) != 1 {
		t.Fatalf("get(0) = %v, want 1", ValueAsDouble(v))
	}
	if v := ArrayGet(a, 1); ValueAsDouble(v) != 2 {
		t.Fatalf("get(1) = %v, want 2", ValueAsDouble(v))
	}
	Free(a)
}

func TestArraySetPadsWithNull(t *testing.T) {
	a := ArraySized(0)
	a = ArraySet(a, 3, String("x"))

	if got := ArrayLength(a); got != 4 {
		t.Fatalf("ArrayLength = %d, want 4", got)
	}
	for i := 0; i < 3; i++ {
		if GetKind(ArrayGet(a, i)) != KindNull {
			t.Fatalf("index %d = %v, want null", i, GetKind(ArrayGet(a, i)))
		}
	}
	if got := StringValue(ArrayGet(a, 3)); got != "x" {
		t.Fatalf("index 3 = %q, want x", got)
	}
	Free(a)
}

func TestArraySetNegativeIndexError(t *testing.T) {
	out := ArraySet(Array(), -1, Number(0))
	if GetKind(out) != KindInvalid {
		t.Fatalf("kind = %v, want invalid", GetKind(out))
	}
	if !InvalidHasMessage(Copy(out)) {
		t.Fatalf("expected message")
	}
	msg := InvalidGetMessage(out)
	if got := StringValue(msg); got != errOutOfBoundsNegativeIndex {
		t.Fatalf("message = %q, want %q", got, errOutOfBoundsNegativeIndex)
	}
	Free(msg)
}

func TestArraySliceRoundTrip(t *testing.T) {
	a := Array()
	for i := 0; i < 5; i++ {
		a = ArrayAppend(a, Int(int64(i)))
	}
	sliced := ArraySlice(a, 1, 4)
	if got := ArrayLength(sliced); got != 3 {
		t.Fatalf("length = %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		if got := ValueAsDouble(ArrayGet(sliced, i)); got != float64(i+1) {
			t.Fatalf("slice[%d] = %v, want %v", i, got, i+1)
		}
	}
	Free(sliced)
}

func TestArrayCopyOnWriteIsolation(t *testing.T) {
	a1 := Array()
	a1 = ArrayAppend(a1, Number(1))
	a2 := Copy(a1)

	a2 = ArraySet(a2, 0, Number(99))

	if got := ValueAsDouble(ArrayGet(a1, 0)); got != 1 {
		t.Fatalf("a1[0] = %v after mutating a2, want unchanged 1", got)
	}
	if got := ValueAsDouble(ArrayGet(a2, 0)); got != 99 {
		t.Fatalf("a2[0] = %v, want 99", got)
	}
	Free(a1)
	Free(a2)
}

// TestArrayAppendSharedPayloadPreservesPriorElementRefcount exercises the
// realloc path (payload not unique) together with a genuine append (i >=
// length) on an array that already holds one live heap-payload element.
// The prior element must not be spuriously released during the
// reallocation: a handle obtained from the older array (b) must still see
// the string as shared and copy-on-write on mutation, rather than
// corrupting the copy now living in the newly reallocated array (a).
func TestArrayAppendSharedPayloadPreservesPriorElementRefcount(t *testing.T) {
	a := Array()
	a = ArrayAppend(a, String("x"))
	b := Copy(a)

	a = ArrayAppend(a, String("y")) // triggers realloc: a's payload is shared with b

	elemFromB := ArrayGet(b, 0)
	mutated := StringAppend(elemFromB, []byte("!"))

	if got := StringValue(ArrayGet(a, 0)); got != "x" {
		t.Fatalf("a[0] = %q after mutating a handle obtained from b, want unchanged %q", got, "x")
	}
	if got := StringValue(mutated); got != "x!" {
		t.Fatalf("mutated = %q, want x!", got)
	}
	Free(mutated)
	Free(a)
	Free(b)
}

func TestArrayIndexesClobberedIdxBehavior(t *testing.T) {
	a := Array()
	for _, n := range []float64{1, 2, 3, 2, 3} {
		a = ArrayAppend(a, Number(n))
	}
	needle := Array()
	needle = ArrayAppend(needle, Number(2))
	needle = ArrayAppend(needle, Number(3))

	out := ArrayIndexes(a, needle)
	if GetKind(out) != KindArray {
		t.Fatalf("kind = %v, want array", GetKind(out))
	}
	if got := ArrayLength(out); got != 2 {
		t.Fatalf("match count = %d, want 2", got)
	}
	Free(out)
}

// TestArrayIndexesIgnoresInteriorMismatch exercises the preserved bug
// directly: a 3-element needle whose middle element does not actually
// occur at the right position still reports a hit, because only the
// first and last comparisons gate the match.
func TestArrayIndexesIgnoresInteriorMismatch(t *testing.T) {
	a := Array()
	for _, n := range []float64{5, 1, 999, 3, 5} {
		a = ArrayAppend(a, Number(n))
	}
	needle := Array()
	for _, n := range []float64{1, 2, 3} {
		needle = ArrayAppend(needle, Number(n))
	}

	out := ArrayIndexes(a, needle)
	if got := ArrayLength(out); got != 1 {
		t.Fatalf("match count = %d, want 1 (interior mismatch should be ignored)", got)
	}
	if got := int(ValueAsDouble(ArrayGet(out, 0))); got != 1 {
		t.Fatalf("match index = %d, want 1", got)
	}
	Free(out)
}
