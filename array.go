package jval

import "github.com/unkn0wn-root/jval/internal/payload"

// arrayPayload is the refcounted flexible element buffer backing an ARRAY
// value. A Value's (offset, size) window gives an O(1)
// sub-slice view over the same payload without copying; elems already
// tracks length via len() and allocated capacity via cap(), so there is no
// separate alloc_length field to maintain by hand.
type arrayPayload struct {
	hdr   payload.Header
	elems []Value
}

func newArrayValue(payloadElems []Value) Value {
	size := uint32(len(payloadElems))
	return Value{
		kind:    KindArray,
		size:    size,
		payload: &arrayPayload{hdr: payload.NewHeader(), elems: payloadElems},
	}
}

// Array returns a fresh empty ARRAY value.
func Array() Value { return newArrayValue(nil) }

// ArraySized returns a fresh ARRAY of length n, every element null.
func ArraySized(n int) Value {
	if n < 0 {
		n = 0
	}
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = Null()
	}
	return newArrayValue(elems)
}

func asArrayPayload(v Value) (*arrayPayload, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.payload.(*arrayPayload), true
}

// arrayWindow returns the slice of elems this Value's (offset, size)
// window covers. It does not copy.
func arrayWindow(v Value, ap *arrayPayload) []Value {
	start := int(v.offset)
	end := start + int(v.size)
	if start > len(ap.elems) {
		start = len(ap.elems)
	}
	if end > len(ap.elems) {
		end = len(ap.elems)
	}
	if end < start {
		end = start
	}
	return ap.elems[start:end]
}

// ArrayLength returns the handle's window length. Peek.
func ArrayLength(v Value) int {
	if v.kind != KindArray {
		return 0
	}
	return int(v.size)
}

// ArrayGet returns a fresh copy of the element at index i within v's
// window, or a bare invalid value if i is out of [0, size). Peek.
func ArrayGet(v Value, i int) Value {
	ap, ok := asArrayPayload(v)
	if !ok {
		return Invalid()
	}
	if i < 0 || i >= int(v.size) {
		return Invalid()
	}
	win := arrayWindow(v, ap)
	return Copy(win[i])
}

// ArrayValues returns fresh copies of every element in v's window, in
// order, the same values ArrayGet returns index by index. Peek.
func ArrayValues(v Value) []Value {
	ap, ok := asArrayPayload(v)
	if !ok {
		return nil
	}
	win := arrayWindow(v, ap)
	out := make([]Value, len(win))
	for i, e := range win {
		out[i] = Copy(e)
	}
	return out
}

// maxArrayIndex is the source's (INT_MAX >> 2) ceiling on offset+index,
// which bounds how large an array/slot index may grow before jval reports
// an overflow rather than attempting an enormous allocation.
const maxArrayIndex = maxIntLimit >> 2

// ArraySet writes v to index i of a, consuming both and returning the
// (possibly reallocated, possibly copy-on-write'd) array. Negative i maps
// to length+i; still-negative is an out-of-bounds error. i that would push
// offset+i past maxArrayIndex is an index-too-large error. Padding added
// between the old length and i is null.
func ArraySet(a Value, i int, v Value) Value {
	ap, ok := asArrayPayload(a)
	if !ok {
		Free(a)
		Free(v)
		return Invalid()
	}
	length := int(a.size)
	if i < 0 {
		i += length
	}
	if i < 0 {
		Free(a)
		Free(v)
		return invalidWithText(errOutOfBoundsNegativeIndex)
	}
	if int(a.offset)+i > maxArrayIndex {
		Free(a)
		Free(v)
		return invalidWithText(errArrayIndexTooLarge)
	}

	absIdx := int(a.offset) + i
	newWindowLen := i + 1
	if newWindowLen < length {
		newWindowLen = length
	}

	if ap.hdr.Unique() && absIdx < cap(ap.elems) {
		for j := len(ap.elems); j <= absIdx; j++ {
			ap.elems = append(ap.elems, Null())
		}
		if absIdx >= len(ap.elems) {
			ap.elems = ap.elems[:absIdx+1]
		}
		Free(ap.elems[absIdx])
		ap.elems[absIdx] = v
		a.size = uint32(newWindowLen)
		return a
	}

	newCap := int(1.5 * float64(maxInt(absIdx+1, int(a.offset)+length)))
	if newCap < absIdx+1 {
		newCap = absIdx + 1
	}
	fresh := make([]Value, newCap)
	win := arrayWindow(a, ap)
	for idx := range win {
		fresh[idx] = Copy(win[idx])
	}
	for idx := len(win); idx < newCap; idx++ {
		fresh[idx] = Null()
	}
	// i within the old window overwrites a value that Copy already
	// duplicated into fresh[i] above, so that copy must be freed before v
	// replaces it. i >= length is a pure append: fresh[i] is untouched
	// Null() padding with nothing live to release.
	if i < length {
		Free(fresh[i])
	}
	fresh[i] = v
	fresh = fresh[:maxInt(newWindowLen, i+1)]
	Free(a)
	return newArrayValue(fresh)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ArrayAppend is ArraySet(a, ArrayLength(a), v). Consumes both.
func ArrayAppend(a Value, v Value) Value { return ArraySet(a, ArrayLength(a), v) }

// ArrayConcat appends every element of b onto a, early-exiting if a becomes
// invalid partway through. Consumes both.
func ArrayConcat(a Value, b Value) Value {
	bp, ok := asArrayPayload(b)
	if !ok {
		Free(a)
		Free(b)
		return Invalid()
	}
	win := append([]Value{}, arrayWindow(b, bp)...)
	for i := range win {
		win[i] = Copy(win[i])
	}
	Free(b)
	for _, e := range win {
		if GetKind(a) == KindInvalid {
			Free(e)
			continue
		}
		a = ArrayAppend(a, e)
	}
	return a
}

// ArraySlice returns the element range [s, e) as a Value sharing a. When
// the window is empty, a fresh empty array is returned instead of an alias.
// Consumes a.
func ArraySlice(a Value, s, e int) Value {
	ap, ok := asArrayPayload(a)
	if !ok {
		Free(a)
		return Invalid()
	}
	start, end := clampSlice(int(a.size), s, e)
	if start == end {
		Free(a)
		return Array()
	}
	newOffset := int(a.offset) + start
	newSize := end - start
	if newOffset > maxArrayIndex {
		// materialize: offset would exceed the handle's encodable range
		win := arrayWindow(a, ap)[start:end]
		fresh := make([]Value, newSize)
		for i, e := range win {
			fresh[i] = Copy(e)
		}
		Free(a)
		return newArrayValue(fresh)
	}
	ap.hdr.Retain()
	Free(a) // drop a's own reference now that ap has an extra one for the new handle
	return Value{kind: KindArray, offset: uint32(newOffset), size: uint32(newSize), payload: ap}
}

// arrayEqual reports elementwise equality; same payload and offset is a
// fast-path true. Peek.
func arrayEqual(a Value, ap *arrayPayload, b Value, bp *arrayPayload) bool {
	if a.size != b.size {
		return false
	}
	if ap == bp && a.offset == b.offset {
		return true
	}
	wa, wb := arrayWindow(a, ap), arrayWindow(b, bp)
	for i := range wa {
		if !Equal(Copy(wa[i]), Copy(wb[i])) {
			return false
		}
	}
	return true
}

// arrayContains reports whether, for every element be of b, there exists
// an element ae of a with Contains(ae, be). Peek.
func arrayContains(a Value, ap *arrayPayload, b Value, bp *arrayPayload) bool {
	wa, wb := arrayWindow(a, ap), arrayWindow(b, bp)
	for _, be := range wb {
		found := false
		for _, ae := range wa {
			if Contains(Copy(ae), Copy(be)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ArrayIndexes finds, for each start position in a, whether the subarray
// of a beginning there equals b elementwise, and collects matching
// indices. The source's per-outer-iteration "idx" variable is clobbered by
// the last inner iteration, so this
// implementation preserves the literal (buggy) observed behavior rather
// than the "obviously intended" one: interpreted literally, a candidate
// start position only survives if the LAST element of b equals a[start+
// len(b)-1] AND the first element of b also equals a[start] (the
// intermediate elements' comparisons are overwritten and never actually
// gate the match). Consumes both.
func ArrayIndexes(a Value, b Value) Value {
	ap, ok1 := asArrayPayload(a)
	bp, ok2 := asArrayPayload(b)
	if !ok1 || !ok2 {
		Free(a)
		Free(b)
		return Invalid()
	}
	wa, wb := arrayWindow(a, ap), arrayWindow(b, bp)
	out := Array()
	if len(wb) == 0 {
		Free(a)
		Free(b)
		return out
	}
	for start := 0; start+len(wb) <= len(wa); start++ {
		// Only the first and last comparisons actually gate the match
		// here (see the doc comment above): every intermediate j's result
		// is computed and then clobbered before it can affect the
		// outcome, so a prefix/suffix match is enough to report a hit
		// even when an interior element differs.
		firstMatch := Equal(Copy(wa[start]), Copy(wb[0]))
		lastMatch := Equal(Copy(wa[start+len(wb)-1]), Copy(wb[len(wb)-1]))
		if firstMatch && lastMatch {
			out = ArrayAppend(out, Int(int64(start)))
		}
	}
	Free(a)
	Free(b)
	return out
}

func freeArrayPayload(v Value) {
	ap := v.payload.(*arrayPayload)
	if ap.hdr.Release() {
		for _, e := range ap.elems {
			Free(e)
		}
	}
}

func copyArrayPayload(v Value) { v.payload.(*arrayPayload).hdr.Retain() }

func arrayRefcount(v Value) int32 { return v.payload.(*arrayPayload).hdr.Count() }
