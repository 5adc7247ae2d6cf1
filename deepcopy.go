package jval

import "github.com/unkn0wn-root/jval/internal/payload"

// DeepCopy consumes v and returns an independent value with its own,
// unshared payload tree: every nested array/object payload is freshly
// allocated rather than refcount-bumped, so the result always compares
// equal to v while sharing none of its storage. Unlike Copy, the result
// always has refcount 1 at every level, so the caller can mutate it in
// place without triggering copy-on-write against a payload the original
// still references.
func DeepCopy(v Value) Value {
	switch GetKind(v) {
	case KindArray:
		ap, _ := asArrayPayload(v)
		win := arrayWindow(v, ap)
		elems := make([]Value, len(win))
		for i, e := range win {
			elems[i] = DeepCopy(Copy(e))
		}
		Free(v)
		return newArrayValue(elems)
	case KindObject:
		out := Object()
		op, _ := asObjectPayload(v)
		for i := range op.slots {
			s := &op.slots[i]
			if !s.used {
				continue
			}
			out = ObjectSet(out, DeepCopy(Copy(s.key)), DeepCopy(Copy(s.value)))
		}
		Free(v)
		return out
	case KindString:
		sp, _ := asStringPayload(v)
		data := append([]byte{}, sp.data...)
		Free(v)
		return newStringValue(data)
	case KindNumber:
		if v.sub != subNumberDecimal {
			return v
		}
		dp := v.payload.(*decimalPayload)
		cp := *dp
		cp.hdr = payload.NewHeader()
		Free(v)
		return Value{kind: KindNumber, sub: subNumberDecimal, payload: &cp}
	case KindInvalid:
		if v.sub != subInvalidMessage {
			return v
		}
		ip := v.payload.(*invalidPayload)
		msg := DeepCopy(Copy(ip.msg))
		Free(v)
		return InvalidWithMessage(msg)
	default:
		return v
	}
}
