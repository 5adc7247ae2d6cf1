package jval

import "github.com/unkn0wn-root/jval/internal/payload"

// objectSlot is one key/value pair in the chained hash table. Deleted
// slots are unlinked from their bucket chain but not
// reclaimed; nextFree is a bump allocator, so slot storage only shrinks
// again at the next rehash, which compacts live slots into a fresh array.
type objectSlot struct {
	used  bool
	hash  uint32
	key   Value
	value Value
	next  int32 // index of the next slot in this bucket's chain, -1 if none
}

// objectPayload is the refcounted chained hash table backing an OBJECT
// value. buckets holds slot indices (or -1 for empty); capacity is always
// a power of two starting at objectInitialCapacity, doubling on rehash.
type objectPayload struct {
	hdr      payload.Header
	buckets  []int32
	slots    []objectSlot
	nextFree int32
	count    int32
}

const objectInitialCapacity = 8

// maxObjectEntries mirrors ArraySet's overflow discipline: past
// this many live entries, growth is refused rather than risking an
// oversized allocation.
const maxObjectEntries = maxArrayIndex

func newObjectPayload() *objectPayload {
	buckets := make([]int32, objectInitialCapacity)
	for i := range buckets {
		buckets[i] = -1
	}
	return &objectPayload{hdr: payload.NewHeader(), buckets: buckets, nextFree: 0}
}

// Object returns a fresh empty OBJECT value.
func Object() Value {
	return Value{kind: KindObject, payload: newObjectPayload()}
}

func asObjectPayload(v Value) (*objectPayload, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.payload.(*objectPayload), true
}

func bucketIndex(hash uint32, capacity int) int { return int(hash) & (capacity - 1) }

// findSlot walks key's bucket chain and returns the slot index holding an
// equal key, or -1.
func (op *objectPayload) findSlot(key Value, hash uint32) int32 {
	idx := op.buckets[bucketIndex(hash, len(op.buckets))]
	for idx != -1 {
		s := &op.slots[idx]
		if s.used && s.hash == hash && StringEqualPeek(s.key, key) {
			return idx
		}
		idx = s.next
	}
	return -1
}

// StringEqualPeek compares two STRING values without consuming either;
// ObjectGet/ObjectSet key lookups need this non-consuming shape, unlike
// the public Equal, which always consumes both arguments.
func StringEqualPeek(a, b Value) bool {
	sa, ok1 := asStringPayload(a)
	sb, ok2 := asStringPayload(b)
	if !ok1 || !ok2 {
		return false
	}
	return stringEqual(sa, sb)
}

// cloneForWrite returns a new payload holding refcount-bumped copies of
// op's live entries (keys and values are shared, not duplicated) with a
// fresh nextFree bump allocator, used when ObjectSet/ObjectDelete must
// copy-on-write a shared payload.
func (op *objectPayload) cloneForWrite() *objectPayload {
	out := &objectPayload{
		hdr:     payload.NewHeader(),
		buckets: append([]int32{}, makeEmptyBuckets(len(op.buckets))...),
		slots:   make([]objectSlot, 0, op.count),
	}
	for i := range op.slots {
		s := &op.slots[i]
		if !s.used {
			continue
		}
		out.insertNew(Copy(s.key), Copy(s.value), s.hash)
	}
	return out
}

func makeEmptyBuckets(n int) []int32 {
	b := make([]int32, n)
	for i := range b {
		b[i] = -1
	}
	return b
}

// insertNew appends a brand-new live slot and links it into its bucket
// chain. Caller has already confirmed the key is not already present.
func (op *objectPayload) insertNew(key, value Value, hash uint32) {
	idx := int32(len(op.slots))
	bi := bucketIndex(hash, len(op.buckets))
	op.slots = append(op.slots, objectSlot{used: true, hash: hash, key: key, value: value, next: op.buckets[bi]})
	op.buckets[bi] = idx
	op.nextFree = idx + 1
	op.count++
}

// maybeRehash doubles capacity and compacts out dead slots once the table
// is at least as full as its bucket count (load factor 1.0), matching the
// source's grow-on-fill policy.
func (op *objectPayload) maybeRehash() {
	if len(op.slots) < len(op.buckets) {
		return
	}
	newCap := len(op.buckets) * 2
	fresh := &objectPayload{
		hdr:     op.hdr,
		buckets: makeEmptyBuckets(newCap),
		slots:   make([]objectSlot, 0, op.count),
	}
	for i := range op.slots {
		s := &op.slots[i]
		if !s.used {
			continue
		}
		idx := int32(len(fresh.slots))
		bi := bucketIndex(s.hash, newCap)
		fresh.slots = append(fresh.slots, objectSlot{used: true, hash: s.hash, key: s.key, value: s.value, next: fresh.buckets[bi]})
		fresh.buckets[bi] = idx
	}
	fresh.nextFree = int32(len(fresh.slots))
	fresh.count = op.count
	*op = *fresh
}

// ObjectGet returns a fresh copy of the value stored at key, or Invalid()
// if key is absent. Consumes key; peeks v.
func ObjectGet(v Value, key Value) Value {
	op, ok := asObjectPayload(v)
	if !ok {
		Free(key)
		return Invalid()
	}
	hash := StringHash(key)
	idx := op.findSlot(key, hash)
	Free(key)
	if idx == -1 {
		return Invalid()
	}
	return Copy(op.slots[idx].value)
}

// ObjectContainsKey reports whether key is present. Consumes key; peeks v.
func ObjectContainsKey(v Value, key Value) bool {
	op, ok := asObjectPayload(v)
	if !ok {
		Free(key)
		return false
	}
	hash := StringHash(key)
	idx := op.findSlot(key, hash)
	Free(key)
	return idx != -1
}

// ObjectSet inserts or overwrites key with value, consuming obj, key, and
// value, and returning the (possibly copy-on-written, possibly rehashed)
// object. key must be a STRING value; any other kind is an error.
func ObjectSet(obj Value, key Value, value Value) Value {
	op, ok := asObjectPayload(obj)
	if !ok || GetKind(key) != KindString {
		Free(obj)
		Free(key)
		Free(value)
		return Invalid()
	}
	if !op.hdr.Unique() {
		fresh := op.cloneForWrite()
		Free(obj)
		op = fresh
		obj = Value{kind: KindObject, payload: op}
	}

	hash := StringHash(key)
	if idx := op.findSlot(key, hash); idx != -1 {
		Free(key)
		Free(op.slots[idx].value)
		op.slots[idx].value = value
		return obj
	}

	if int(op.count) >= maxObjectEntries {
		Free(key)
		Free(value)
		Free(obj)
		return invalidWithText(errObjectTooBig)
	}

	op.insertNew(key, value, hash)
	op.maybeRehash()
	return obj
}

// ObjectDelete removes key if present, consuming obj and key and returning
// obj. Deleting an absent key is a no-op.
func ObjectDelete(obj Value, key Value) Value {
	op, ok := asObjectPayload(obj)
	if !ok {
		Free(key)
		return obj
	}
	if !op.hdr.Unique() {
		fresh := op.cloneForWrite()
		Free(obj)
		op = fresh
		obj = Value{kind: KindObject, payload: op}
	}

	hash := StringHash(key)
	bi := bucketIndex(hash, len(op.buckets))
	prev := int32(-1)
	idx := op.buckets[bi]
	for idx != -1 {
		s := &op.slots[idx]
		if s.used && s.hash == hash && StringEqualPeek(s.key, key) {
			if prev == -1 {
				op.buckets[bi] = s.next
			} else {
				op.slots[prev].next = s.next
			}
			Free(s.key)
			Free(s.value)
			*s = objectSlot{used: false, next: -1}
			op.count--
			break
		}
		prev = idx
		idx = s.next
	}
	Free(key)
	return obj
}

// ObjectLength returns the number of live entries. Peek.
func ObjectLength(v Value) int {
	op, ok := asObjectPayload(v)
	if !ok {
		return 0
	}
	return int(op.count)
}

// ObjectMerge copies every live entry of b into a, overwriting on key
// collision. Consumes both.
func ObjectMerge(a, b Value) Value {
	bp, ok := asObjectPayload(b)
	if !ok {
		Free(a)
		Free(b)
		return Invalid()
	}
	for i := range bp.slots {
		s := &bp.slots[i]
		if !s.used {
			continue
		}
		a = ObjectSet(a, Copy(s.key), Copy(s.value))
	}
	Free(b)
	return a
}

// ObjectMergeRecursive is ObjectMerge, except that when both sides hold an
// OBJECT at the same key the two sub-objects are merged recursively
// instead of the right side replacing the left outright. Consumes both.
func ObjectMergeRecursive(a, b Value) Value {
	bp, ok := asObjectPayload(b)
	if !ok {
		Free(a)
		Free(b)
		return Invalid()
	}
	for i := range bp.slots {
		s := &bp.slots[i]
		if !s.used {
			continue
		}
		existing := ObjectGet(a, Copy(s.key))
		if GetKind(existing) == KindObject && GetKind(s.value) == KindObject {
			merged := ObjectMergeRecursive(existing, Copy(s.value))
			a = ObjectSet(a, Copy(s.key), merged)
		} else {
			Free(existing)
			a = ObjectSet(a, Copy(s.key), Copy(s.value))
		}
	}
	Free(b)
	return a
}

// ObjectKeys returns every live key's text, in slot order (the order the
// iterator cursor visits), read directly from the slots via StringValue.
// Peek.
func ObjectKeys(v Value) []string {
	op, ok := asObjectPayload(v)
	if !ok {
		return nil
	}
	keys := make([]string, 0, op.count)
	for i := range op.slots {
		if op.slots[i].used {
			keys = append(keys, StringValue(op.slots[i].key))
		}
	}
	return keys
}

// ITER_FINISHED is the cursor value returned once iteration has exhausted
// every live slot.
const ITER_FINISHED int32 = -2

// ObjectIterFirst returns the first live slot's cursor, or ITER_FINISHED
// if the object has no entries. Peek.
func ObjectIterFirst(v Value) int32 {
	op, ok := asObjectPayload(v)
	if !ok {
		return ITER_FINISHED
	}
	for i := range op.slots {
		if op.slots[i].used {
			return int32(i)
		}
	}
	return ITER_FINISHED
}

// ObjectIterNext returns the next live slot's cursor after cursor, or
// ITER_FINISHED. Peek.
func ObjectIterNext(v Value, cursor int32) int32 {
	op, ok := asObjectPayload(v)
	if !ok {
		return ITER_FINISHED
	}
	for i := cursor + 1; int(i) < len(op.slots); i++ {
		if op.slots[i].used {
			return i
		}
	}
	return ITER_FINISHED
}

// ObjectIterKey returns a fresh copy of the key at cursor. Peek.
func ObjectIterKey(v Value, cursor int32) Value {
	op, ok := asObjectPayload(v)
	if !ok || cursor < 0 || int(cursor) >= len(op.slots) {
		return Invalid()
	}
	return Copy(op.slots[cursor].key)
}

// ObjectIterValue returns a fresh copy of the value at cursor. Peek.
func ObjectIterValue(v Value, cursor int32) Value {
	op, ok := asObjectPayload(v)
	if !ok || cursor < 0 || int(cursor) >= len(op.slots) {
		return Invalid()
	}
	return Copy(op.slots[cursor].value)
}

func freeObjectPayload(v Value) {
	op := v.payload.(*objectPayload)
	if op.hdr.Release() {
		for i := range op.slots {
			if op.slots[i].used {
				Free(op.slots[i].key)
				Free(op.slots[i].value)
			}
		}
	}
}

func copyObjectPayload(v Value) { v.payload.(*objectPayload).hdr.Retain() }

func objectRefcount(v Value) int32 { return v.payload.(*objectPayload).hdr.Count() }
