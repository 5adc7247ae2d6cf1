package jval

import "testing"

func TestSnapshotRoundTripScalarAndContainers(t *testing.T) {
	obj := Object()
	obj = ObjectSet(obj, String("n"), Number(42))
	obj = ObjectSet(obj, String("arr"), func() Value {
		a := Array()
		a = ArrayAppend(a, String("x"))
		a = ArrayAppend(a, True())
		return a
	}())

	snap := ToSnapshot(obj)
	rebuilt := FromSnapshot(snap)

	if !Equal(obj, rebuilt) {
		t.Fatal("expected round trip through Snapshot to preserve structure")
	}
}

// TestSnapshotRoundTripMultiElementHeapPayloadArray decodes an array with
// several heap-payload elements (strings), which rebuilds through
// FromSnapshot's ArrayAppend loop and previously could corrupt earlier
// elements via ArraySet's reallocation path.
func TestSnapshotRoundTripMultiElementHeapPayloadArray(t *testing.T) {
	a := Array()
	a = ArrayAppend(a, String("one"))
	a = ArrayAppend(a, String("two"))
	a = ArrayAppend(a, String("three"))

	snap := ToSnapshot(a)
	rebuilt := FromSnapshot(snap)

	want := []string{"one", "two", "three"}
	for i, w := range want {
		if got := StringValue(ArrayGet(rebuilt, i)); got != w {
			t.Fatalf("rebuilt[%d] = %q, want %q", i, got, w)
		}
	}
	Free(a)
	Free(rebuilt)
}

func TestSnapshotRoundTripDecimalLiteral(t *testing.T) {
	v := NumberWithLiteral("100000000000000000000")
	snap := ToSnapshot(v)
	if snap.Literal != "1E+20" {
		t.Fatalf("snapshot literal = %q, want 1E+20", snap.Literal)
	}
	rebuilt := FromSnapshot(snap)
	if !NumberHasLiteral(rebuilt) {
		t.Fatal("rebuilt value should still be a decimal-literal number")
	}
	lit := NumberGetLiteral(rebuilt)
	if got := StringValue(lit); got != "1E+20" {
		t.Fatalf("rebuilt literal = %q, want 1E+20", got)
	}
	Free(lit)
	Free(v)
	Free(rebuilt)
}

func TestSnapshotRoundTripDecimalInfinity(t *testing.T) {
	v := NumberWithLiteral("inf")
	snap := ToSnapshot(v)
	if snap.Literal != "inf" {
		t.Fatalf("snapshot literal = %q, want inf", snap.Literal)
	}
	rebuilt := FromSnapshot(snap)
	if !NumberHasLiteral(rebuilt) {
		t.Fatal("rebuilt infinity should still be decimal-literal, not collapse to native")
	}
	Free(v)
	Free(rebuilt)
}
