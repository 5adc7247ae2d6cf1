package jval

import (
	"fmt"
	"testing"
)

func TestObjectSetGetDelete(t *testing.T) {
	o := Object()
	o = ObjectSet(o, String("a"), Number(1))

	got := ObjectGet(o, String("a"))
	if ValueAsDouble(got) != 1 {
		t.Fatalf("get(a) = %v, want 1", ValueAsDouble(got))
	}

	o = ObjectDelete(o, String("a"))
	if ObjectContainsKey(o, String("a")) {
		t.Fatal("expected a to be deleted")
	}
	Free(o)
}

func TestObjectRehashOnNineKeys(t *testing.T) {
	o := Object()
	for i := 0; i < 9; i++ {
		o = ObjectSet(o, String(fmt.Sprintf("k%d", i)), Int(int64(i)))
	}
	if got := ObjectLength(o); got != 9 {
		t.Fatalf("length = %d, want 9", got)
	}
	for i := 0; i < 9; i++ {
		key := fmt.Sprintf("k%d", i)
		v := ObjectGet(o, String(key))
		if ValueAsDouble(v) != float64(i) {
			t.Fatalf("get(%s) = %v, want %d", key, ValueAsDouble(v), i)
		}
	}
	Free(o)
}

func TestObjectCopyOnWriteIsolation(t *testing.T) {
	o1 := Object()
	o1 = ObjectSet(o1, String("a"), Number(1))
	o2 := Copy(o1)

	o2 = ObjectSet(o2, String("a"), Number(2))

	if got := ValueAsDouble(ObjectGet(o1, String("a"))); got != 1 {
		t.Fatalf("o1[a] = %v after mutating o2, want unchanged 1", got)
	}
	if got := ValueAsDouble(ObjectGet(o2, String("a"))); got != 2 {
		t.Fatalf("o2[a] = %v, want 2", got)
	}
	Free(o1)
	Free(o2)
}

func TestObjectContainsNested(t *testing.T) {
	inner := Object()
	inner = ObjectSet(inner, String("c"), Number(2))
	outer := Object()
	outer = ObjectSet(outer, String("a"), Number(1))
	outer = ObjectSet(outer, String("b"), Copy(inner))

	needleInner := Object()
	needleInner = ObjectSet(needleInner, String("c"), Number(2))
	needle := Object()
	needle = ObjectSet(needle, String("b"), needleInner)

	if !Contains(outer, needle) {
		t.Fatal("expected outer to contain needle")
	}
	Free(inner)
}

func TestObjectMergeRecursive(t *testing.T) {
	a := Object()
	innerA := Object()
	innerA = ObjectSet(innerA, String("x"), Number(1))
	a = ObjectSet(a, String("n"), innerA)

	b := Object()
	innerB := Object()
	innerB = ObjectSet(innerB, String("y"), Number(2))
	b = ObjectSet(b, String("n"), innerB)

	merged := ObjectMergeRecursive(a, b)
	n := ObjectGet(merged, String("n"))
	if ValueAsDouble(ObjectGet(n, String("x"))) != 1 {
		t.Fatal("expected x=1 preserved from a")
	}
	if ValueAsDouble(ObjectGet(n, String("y"))) != 2 {
		t.Fatal("expected y=2 merged in from b")
	}
	Free(n)
	Free(merged)
}
