package jval

import (
	"errors"
	"testing"
)

func TestWalkVisitsEveryNodeInOrder(t *testing.T) {
	obj := Object()
	obj = ObjectSet(obj, String("a"), Number(1))
	obj = ObjectSet(obj, String("b"), func() Value {
		a := Array()
		a = ArrayAppend(a, String("x"))
		a = ArrayAppend(a, String("y"))
		return a
	}())

	var paths []string
	err := Walk(obj, func(path []PathElem, v Value) error {
		s := ""
		for _, p := range path {
			s += p.String()
		}
		paths = append(paths, s)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned %v, want nil", err)
	}

	want := []string{"", ".a", ".b", ".b[0]", ".b[1]"}
	if len(paths) != len(want) {
		t.Fatalf("visited %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("visited[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	Free(obj)
}

func TestWalkStopsOnFirstError(t *testing.T) {
	a := Array()
	a = ArrayAppend(a, Number(1))
	a = ArrayAppend(a, Number(2))
	a = ArrayAppend(a, Number(3))

	sentinel := errors.New("stop")
	visited := 0
	err := Walk(a, func(path []PathElem, v Value) error {
		visited++
		if len(path) == 1 && path[0].Index == 1 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if visited != 3 {
		t.Fatalf("visited %d nodes before stopping, want 3", visited)
	}
	Free(a)
}

func TestWalkDoesNotConsumeValue(t *testing.T) {
	a := Array()
	a = ArrayAppend(a, String("keep"))

	if err := Walk(a, func(path []PathElem, v Value) error { return nil }); err != nil {
		t.Fatalf("Walk returned %v, want nil", err)
	}

	if got := StringValue(ArrayGet(a, 0)); got != "keep" {
		t.Fatalf("a[0] = %q after Walk, want unchanged %q", got, "keep")
	}
	Free(a)
}
