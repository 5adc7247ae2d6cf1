package jval

import (
	"fmt"

	"github.com/spaolacci/murmur3"

	"github.com/unkn0wn-root/jval/internal/payload"
	"github.com/unkn0wn-root/jval/internal/utf8x"
)

// murmurSeed is the fixed MurmurHash3-32 seed used for every string hash.
const murmurSeed uint32 = 0x432A9843

// stringPayload is the refcounted flexible byte buffer backing a STRING
// value. Go's slice header already carries length and
// allocated capacity, so there is no separate alloc-length field to
// maintain by hand; the source's trailing-NUL convention is dropped (Go
// byte slices are not NUL-terminated and every operation here already
// carries an explicit length), documented in DESIGN.md.
type stringPayload struct {
	hdr    payload.Header
	data   []byte
	hashed bool
	hash   uint32
}

func newStringValue(data []byte) Value {
	return Value{kind: KindString, payload: internString(data), origin: newOrigin()}
}

// String returns a STRING value copying s's bytes verbatim if s is valid
// UTF-8, otherwise rewriting each malformed byte/sequence as U+FFFD.
func String(s string) Value { return StringSized([]byte(s)) }

// StringSized is the byte-slice form of String; buf is always copied.
func StringSized(buf []byte) Value {
	clean := utf8x.ReplaceInvalid(buf)
	data := make([]byte, len(clean))
	copy(data, clean)
	return newStringValue(data)
}

// StringEmpty returns an empty string pre-sized to hold capHint bytes
// before the first reallocation.
func StringEmpty(capHint int) Value {
	if capHint < 0 {
		capHint = 0
	}
	return newStringValue(make([]byte, 0, capHint))
}

func asStringPayload(v Value) (*stringPayload, bool) {
	if v.kind != KindString {
		return nil, false
	}
	return v.payload.(*stringPayload), true
}

// StringLengthBytes returns the stored byte length. Peek.
func StringLengthBytes(v Value) int {
	sp, ok := asStringPayload(v)
	if !ok {
		return 0
	}
	return len(sp.data)
}

// StringLengthCodepoints walks the UTF-8 buffer and counts code points.
// Peek.
func StringLengthCodepoints(v Value) int {
	sp, ok := asStringPayload(v)
	if !ok {
		return 0
	}
	return utf8x.CodepointCount(sp.data)
}

// StringValue returns v's bytes as a Go string (a copy). Peek.
func StringValue(v Value) string {
	sp, ok := asStringPayload(v)
	if !ok {
		return ""
	}
	return string(sp.data)
}

// StringBytes returns v's bytes without copying. The caller MUST NOT
// mutate the returned slice; it may alias live payload storage. Peek.
func StringBytes(v Value) []byte {
	sp, ok := asStringPayload(v)
	if !ok {
		return nil
	}
	return sp.data
}

// StringHash returns the cached MurmurHash3-32 hash of v's bytes (seed
// 0x432A9843), computing and caching it on first call. Peek.
func StringHash(v Value) uint32 {
	sp, ok := asStringPayload(v)
	if !ok {
		return 0
	}
	if !sp.hashed {
		sp.hash = murmur3.Sum32WithSeed(sp.data, murmurSeed)
		sp.hashed = true
	}
	return sp.hash
}

// minGrowCapacity is the floor used when a string payload must grow:
// 2*(cur+len), minimum 32.
const minGrowCapacity = 32

// StringAppendBuf appends buf's raw bytes to v, validating UTF-8 across the
// join boundary and replacing malformed sequences. Consumes v.
func StringAppendBuf(v Value, buf []byte) Value {
	sp, ok := asStringPayload(v)
	if !ok {
		Free(v)
		return Invalid()
	}
	joined := append(append([]byte{}, sp.data...), buf...)
	clean := utf8x.ReplaceInvalid(joined)
	return appendRaw(v, sp, clean[len(sp.data):], true)
}

// StringAppend appends len bytes from buf without UTF-8 re-validation
// (caller already knows buf is on a code point boundary); this is the
// workhorse `append` primitive every other string-growing operation
// builds on.
func StringAppend(v Value, buf []byte) Value {
	sp, ok := asStringPayload(v)
	if !ok {
		Free(v)
		return Invalid()
	}
	return appendRaw(v, sp, buf, false)
}

func appendRaw(v Value, sp *stringPayload, add []byte, alreadyValidated bool) Value {
	_ = alreadyValidated
	newLen := len(sp.data) + len(add)
	// With interning enabled the backend may still hand sp out to later
	// String calls, so a unique refcount does not make in-place growth safe.
	if sp.hdr.Unique() && cap(sp.data) >= newLen && internBackend == nil {
		sp.data = append(sp.data, add...)
		sp.hashed = false
		return v
	}
	newCap := 2 * newLen
	if newCap < minGrowCapacity {
		newCap = minGrowCapacity
	}
	data := make([]byte, newLen, newCap)
	copy(data, sp.data)
	copy(data[len(sp.data):], add)
	Free(v)
	return newStringValue(data)
}

// StringAppendCodepoint appends a single code point, encoded as UTF-8
// (invalid code points become U+FFFD). Consumes v.
func StringAppendCodepoint(v Value, cp rune) Value {
	var buf [4]byte
	n := utf8x.Encode(cp, buf[:])
	return StringAppend(v, buf[:n])
}

// StringAppendStr appends other's bytes to v. Consumes both.
func StringAppendStr(v Value, other Value) Value {
	sp, ok := asStringPayload(other)
	if !ok {
		Free(v)
		Free(other)
		return Invalid()
	}
	out := StringAppend(v, sp.data)
	Free(other)
	return out
}

// StringFormat appends a printf-style formatted string to v, matching the
// source's "grown scratch buffer" formatter. Consumes v.
func StringFormat(v Value, format string, args ...any) Value {
	return StringAppendBuf(v, []byte(fmt.Sprintf(format, args...)))
}

// StringConcat is equivalent to append(a, bytes(b), len(b)). Consumes both.
func StringConcat(a, b Value) Value { return StringAppendStr(a, b) }

// clampSlice implements the slice policy shared by String and Array:
// negative indices add length, then each index clamps to [0, length];
// if end < start, end is set to start.
func clampSlice(length, start, end int) (int, int) {
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 {
		start = 0
	} else if start > length {
		start = length
	}
	if end < 0 {
		end = 0
	} else if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return start, end
}

// StringSlice returns the code-point range [start, end) as a fresh string.
// Strings are never aliased: slicing always materializes a fresh buffer,
// the source's NUL-terminated equivalent, minus the NUL itself, which
// jval's explicit length already makes unnecessary. Consumes v.
func StringSlice(v Value, start, end int) Value {
	sp, ok := asStringPayload(v)
	if !ok {
		Free(v)
		return Invalid()
	}
	cps := utf8x.CodepointCount(sp.data)
	s, e := clampSlice(cps, start, end)

	byteStart, byteEnd := codepointOffsetToByte(sp.data, s), codepointOffsetToByte(sp.data, e)
	out := make([]byte, byteEnd-byteStart)
	copy(out, sp.data[byteStart:byteEnd])
	Free(v)
	return newStringValue(out)
}

func codepointOffsetToByte(data []byte, cpIdx int) int {
	off := 0
	for i := 0; i < cpIdx && off < len(data); i++ {
		_, size := utf8x.DecodeNext(data[off:])
		if size == 0 {
			break
		}
		off += size
	}
	return off
}

// StringIndexes returns an ARRAY of code-point indices at which needle
// occurs in v. Every code-point position is tried in turn, stepping one
// code point after each match, so overlapping occurrences are each
// reported. Consumes both.
func StringIndexes(v Value, needle Value) Value {
	sp, ok1 := asStringPayload(v)
	np, ok2 := asStringPayload(needle)
	if !ok1 || !ok2 {
		Free(v)
		Free(needle)
		return Invalid()
	}
	var indexes []int
	if len(np.data) > 0 {
		cpIdx := 0
		off := 0
		for off <= len(sp.data)-len(np.data) {
			if bytesEqual(sp.data[off:off+len(np.data)], np.data) {
				indexes = append(indexes, cpIdx)
			}
			_, size := utf8x.DecodeNext(sp.data[off:])
			if size == 0 {
				break
			}
			off += size
			cpIdx++
		}
	}
	out := Array()
	for _, idx := range indexes {
		out = ArrayAppend(out, Int(int64(idx)))
	}
	Free(v)
	Free(needle)
	return out
}

// StringSplit splits v on sep byte-wise. With an empty sep, returns one
// element per code point; otherwise an empty tail element is appended iff
// v ends with sep. Consumes both.
func StringSplit(v Value, sep Value) Value {
	sp, ok1 := asStringPayload(v)
	sepP, ok2 := asStringPayload(sep)
	if !ok1 || !ok2 {
		Free(v)
		Free(sep)
		return Invalid()
	}
	out := Array()
	if len(sepP.data) == 0 {
		data := sp.data
		for len(data) > 0 {
			_, size := utf8x.DecodeNext(data)
			if size == 0 {
				break
			}
			out = ArrayAppend(out, newStringValue(append([]byte{}, data[:size]...)))
			data = data[size:]
		}
		Free(v)
		Free(sep)
		return out
	}

	data := sp.data
	for {
		i := bytesIndex(data, sepP.data)
		if i < 0 {
			out = ArrayAppend(out, newStringValue(append([]byte{}, data...)))
			break
		}
		out = ArrayAppend(out, newStringValue(append([]byte{}, data[:i]...)))
		data = data[i+len(sepP.data):]
	}
	Free(v)
	Free(sep)
	return out
}

// StringRepeat repeats v's bytes n times using doubling so total work is
// O(result length). n<0 returns Null(); a result length >= INT_MAX returns
// an invalid-with-message. Consumes v.
func StringRepeat(v Value, n int) Value {
	sp, ok := asStringPayload(v)
	if !ok {
		Free(v)
		return Invalid()
	}
	if n < 0 {
		Free(v)
		return Null()
	}
	total64 := int64(len(sp.data)) * int64(n)
	if total64 >= maxIntLimit {
		Free(v)
		return invalidWithText(errRepeatTooLong)
	}
	total := int(total64)
	out := make([]byte, 0, total)
	if n > 0 {
		out = append(out, sp.data...)
		for len(out) < total {
			out = append(out, out[:min(len(out), total-len(out))]...)
		}
	}
	Free(v)
	return newStringValue(out)
}

// maxIntLimit mirrors the source's INT_MAX bound for string-length
// overflow checks.
const maxIntLimit = 1<<31 - 1

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// StringExplode returns an ARRAY of code-point integers. Consumes v.
func StringExplode(v Value) Value {
	sp, ok := asStringPayload(v)
	if !ok {
		Free(v)
		return Invalid()
	}
	out := Array()
	data := sp.data
	for len(data) > 0 {
		cp, size := utf8x.DecodeNext(data)
		if size == 0 {
			break
		}
		if cp == -1 {
			cp = utf8x.ReplacementChar
		}
		out = ArrayAppend(out, Int(int64(cp)))
		data = data[size:]
	}
	Free(v)
	return out
}

// StringImplode builds a string from an ARRAY of code-point integers.
// Code points outside [0, 0x10FFFF] or in the UTF-16 surrogate range become
// U+FFFD. Consumes v.
func StringImplode(v Value) Value {
	ap, ok := asArrayPayload(v)
	if !ok {
		Free(v)
		return Invalid()
	}
	elems := arrayWindow(v, ap)
	var buf []byte
	var scratch [4]byte
	for _, e := range elems {
		cp := rune(int64(ValueAsDouble(e)))
		if cp < 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
			cp = utf8x.ReplacementChar
		}
		n := utf8x.Encode(cp, scratch[:])
		buf = append(buf, scratch[:n]...)
	}
	Free(v)
	return newStringValue(buf)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bytesIndex(haystack, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if bytesEqual(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

// stringEqual implements byte-wise equality: length first, then memcmp.
func stringEqual(a, b *stringPayload) bool {
	if len(a.data) != len(b.data) {
		return false
	}
	return bytesEqual(a.data, b.data)
}

func freeStringPayload(v Value) {
	sp := v.payload.(*stringPayload)
	sp.hdr.Release()
}

func copyStringPayload(v Value) { v.payload.(*stringPayload).hdr.Retain() }

func stringRefcount(v Value) int32 { return v.payload.(*stringPayload).hdr.Count() }
