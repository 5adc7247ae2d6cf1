package jval

import (
	"context"
	"testing"
)

// mapInternBackend is a trivial in-memory intern.Backend for exercising the
// interning path without pulling in ristretto/bigcache.
type mapInternBackend struct {
	m map[string]any
}

func (b *mapInternBackend) Get(ctx context.Context, key string) (any, bool) {
	v, ok := b.m[key]
	return v, ok
}

func (b *mapInternBackend) Set(ctx context.Context, key string, value any, cost int64) (bool, error) {
	if b.m == nil {
		b.m = make(map[string]any)
	}
	b.m[key] = value
	return true, nil
}

func (b *mapInternBackend) Del(ctx context.Context, key string) { delete(b.m, key) }
func (b *mapInternBackend) Close(ctx context.Context) error     { return nil }

// TestIdenticalNotObservableThroughInterning guards the invariant that
// interning is purely an allocation optimization: two independently
// constructed strings that happen to share an interned payload must
// compare Equal but never Identical, while an explicit Copy of either one
// remains Identical to its source.
func TestIdenticalNotObservableThroughInterning(t *testing.T) {
	prev := internBackend
	EnableInterning(&mapInternBackend{})
	defer EnableInterning(prev)

	a := String("shared-text")
	b := String("shared-text") // independent construction, same bytes

	if !Equal(Copy(a), Copy(b)) {
		t.Fatal("independently constructed equal strings must still be Equal")
	}
	if Identical(Copy(a), Copy(b)) {
		t.Fatal("interning must not make independently constructed strings Identical")
	}

	c := Copy(a)
	if !Identical(Copy(a), c) {
		t.Fatal("an explicit Copy must remain Identical to its source")
	}

	Free(a)
	Free(b)
}

func TestEqualAcrossRepresentations(t *testing.T) {
	if !Equal(Number(5), NumberWithLiteral("5")) {
		t.Fatal("native 5 should equal decimal-literal 5")
	}
	if Equal(Number(5), Number(6)) {
		t.Fatal("5 should not equal 6")
	}
	if !Equal(String("abc"), String("abc")) {
		t.Fatal("equal strings should compare equal")
	}
}

func TestEqualOnIndependentCopiesOfSharedValue(t *testing.T) {
	h := Object()
	h = ObjectSet(h, String("a"), Number(1))
	c1 := Copy(h)
	c2 := Copy(h)
	if !Equal(c1, c2) {
		t.Fatal("independent copies of the same value must compare equal")
	}
	Free(h)
}

func TestIdenticalRequiresSamePayload(t *testing.T) {
	a := Array()
	a = ArrayAppend(a, Number(1))
	b := Copy(a)

	if !Identical(Copy(a), Copy(b)) {
		t.Fatal("a Copy() should remain Identical to its source (shared payload)")
	}

	c := Array()
	c = ArrayAppend(c, Number(1))
	if Identical(Copy(a), Copy(c)) {
		t.Fatal("two independently constructed equal arrays should not be Identical")
	}
	Free(a)
	Free(b)
	Free(c)
}

func TestContainsProperties(t *testing.T) {
	outer := Array()
	outer = ArrayAppend(outer, Number(1))
	outer = ArrayAppend(outer, Number(2))
	outer = ArrayAppend(outer, Number(3))

	needle := Array()
	needle = ArrayAppend(needle, Number(2))

	if !Contains(outer, needle) {
		t.Fatal("expected [1,2,3] to contain [2]")
	}
}

func TestContainsMismatchedKinds(t *testing.T) {
	if Contains(Number(1), String("1")) {
		t.Fatal("different kinds should never be contained in each other")
	}
}
