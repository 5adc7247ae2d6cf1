package jval

// Snapshot is a flat, codec-friendly intermediate form of a Value tree
// (jval/codec's CBOR and Msgpack codecs can encode a Snapshot, never a
// Value directly, since Value's payload pointers and refcounts have no
// meaning outside the owning process; the Protobuf codec only accepts
// proto.Message types, which Snapshot is not). Converting through Snapshot is how
// jval participates in storage or transport without ever touching JSON
// text: no textual JSON grammar is involved anywhere in this path.
type Snapshot struct {
	Kind    Kind               `cbor:"1,keyasint" msgpack:"kind"`
	Sub     uint8              `cbor:"2,keyasint" msgpack:"sub"`
	Num     float64            `cbor:"3,keyasint" msgpack:"num"`
	Literal string             `cbor:"4,keyasint,omitempty" msgpack:"literal,omitempty"`
	Text    string             `cbor:"5,keyasint,omitempty" msgpack:"text,omitempty"`
	Items   []Snapshot         `cbor:"6,keyasint,omitempty" msgpack:"items,omitempty"`
	Entries []SnapshotEntry    `cbor:"7,keyasint,omitempty" msgpack:"entries,omitempty"`
	Message *Snapshot          `cbor:"8,keyasint,omitempty" msgpack:"message,omitempty"`
}

// SnapshotEntry is one key/value pair of an OBJECT Snapshot. Order matches
// Walk's slot-order traversal; it is not semantically significant (objects
// compare as sets) but is preserved so encodings of the same object are
// stable across a round trip.
type SnapshotEntry struct {
	Key   string   `cbor:"1,keyasint" msgpack:"key"`
	Value Snapshot `cbor:"2,keyasint" msgpack:"value"`
}

// snapshotLeaf converts v's own kind/sub/num/text/literal fields, leaving
// Items/Entries empty for ARRAY/OBJECT: ToSnapshot fills those in as Walk
// descends into v's children.
func snapshotLeaf(v Value) Snapshot {
	switch GetKind(v) {
	case KindInvalid:
		if v.sub != subInvalidMessage {
			return Snapshot{Kind: KindInvalid}
		}
		ip := v.payload.(*invalidPayload)
		msg := ToSnapshot(ip.msg)
		return Snapshot{Kind: KindInvalid, Sub: subInvalidMessage, Message: &msg}
	case KindNull, KindFalse, KindTrue:
		return Snapshot{Kind: GetKind(v)}
	case KindNumber:
		s := Snapshot{Kind: KindNumber, Sub: v.sub, Num: ValueAsDouble(v)}
		if v.sub == subNumberDecimal {
			dp := v.payload.(*decimalPayload)
			switch {
			case dp.inf && dp.neg:
				s.Literal = "-inf"
			case dp.inf:
				s.Literal = "inf"
			default:
				lit := NumberGetLiteral(v)
				s.Literal = StringValue(lit)
				Free(lit)
			}
		}
		return s
	case KindString:
		return Snapshot{Kind: KindString, Text: StringValue(v)}
	case KindArray:
		return Snapshot{Kind: KindArray}
	case KindObject:
		return Snapshot{Kind: KindObject}
	default:
		return Snapshot{Kind: KindInvalid}
	}
}

// ToSnapshot converts v into a Snapshot tree. It is built directly on Walk:
// Walk's depth-first callback visits v and every array/object descendant in
// the same order ToSnapshot used to hand-roll, and this function now just
// grafts each visited node onto the Snapshot its parent is accumulating.
// Peek; v is not consumed.
func ToSnapshot(v Value) Snapshot {
	var root Snapshot
	stack := make([]*Snapshot, 0, 8)
	Walk(v, func(path []PathElem, cur Value) error {
		stack = stack[:len(path)]
		snap := snapshotLeaf(cur)
		if len(path) == 0 {
			root = snap
			stack = append(stack, &root)
			return nil
		}
		parent := stack[len(path)-1]
		elem := path[len(path)-1]
		if elem.IsKey {
			parent.Entries = append(parent.Entries, SnapshotEntry{Key: elem.Key, Value: snap})
			stack = append(stack, &parent.Entries[len(parent.Entries)-1].Value)
			return nil
		}
		parent.Items = append(parent.Items, snap)
		stack = append(stack, &parent.Items[len(parent.Items)-1])
		return nil
	})
	return root
}

// FromSnapshot rebuilds an owned Value tree from s.
func FromSnapshot(s Snapshot) Value {
	switch s.Kind {
	case KindInvalid:
		if s.Sub != subInvalidMessage || s.Message == nil {
			return Invalid()
		}
		return InvalidWithMessage(FromSnapshot(*s.Message))
	case KindNull:
		return Null()
	case KindFalse:
		return False()
	case KindTrue:
		return True()
	case KindNumber:
		if s.Sub == subNumberDecimal && s.Literal != "" {
			return NumberWithLiteral(s.Literal)
		}
		return Number(s.Num)
	case KindString:
		return String(s.Text)
	case KindArray:
		out := Array()
		for _, item := range s.Items {
			out = ArrayAppend(out, FromSnapshot(item))
		}
		return out
	case KindObject:
		out := Object()
		for _, e := range s.Entries {
			out = ObjectSet(out, String(e.Key), FromSnapshot(e.Value))
		}
		return out
	default:
		return Invalid()
	}
}
