package jval

import "fmt"

// PathElem identifies one step into an array or object during Walk.
// Exactly one of Index or Key is meaningful, selected by IsKey.
type PathElem struct {
	Index int
	Key   string
	IsKey bool
}

func (p PathElem) String() string {
	if p.IsKey {
		return fmt.Sprintf(".%s", p.Key)
	}
	return fmt.Sprintf("[%d]", p.Index)
}

// Walk performs a non-consuming, depth-first traversal of v, calling fn
// once for v itself and once for every element/entry reachable through
// arrays and objects, in index/slot order. fn's path argument is only
// valid for the duration of the call. Walk stops and returns fn's error
// as soon as one is returned. Neither v nor any visited sub-value is
// consumed. ToSnapshot is built directly on top of Walk. Equal and
// Contains do not use it: they dispatch pairwise over two trees at once
// and short-circuit on the first mismatch, which doesn't fit Walk's
// single-tree per-node callback.
func Walk(v Value, fn func(path []PathElem, v Value) error) error {
	return walk(v, nil, fn)
}

func walk(v Value, path []PathElem, fn func([]PathElem, Value) error) error {
	if err := fn(path, v); err != nil {
		return err
	}
	switch GetKind(v) {
	case KindArray:
		ap, _ := asArrayPayload(v)
		win := arrayWindow(v, ap)
		for i, e := range win {
			if err := walk(e, append(path, PathElem{Index: i}), fn); err != nil {
				return err
			}
		}
	case KindObject:
		op, _ := asObjectPayload(v)
		for i := range op.slots {
			s := &op.slots[i]
			if !s.used {
				continue
			}
			if err := walk(s.value, append(path, PathElem{Key: StringValue(s.key), IsKey: true}), fn); err != nil {
				return err
			}
		}
	}
	return nil
}
