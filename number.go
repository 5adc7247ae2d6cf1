package jval

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/unkn0wn-root/jval/internal/decimalctx"
	"github.com/unkn0wn-root/jval/internal/payload"
)

// decimalPayload is the refcounted arbitrary-precision decimal backing for
// a NUMBER value in decimal-literal mode. double and text
// are lazily computed and cached; hasDouble/hasText track whether the
// cache is populated (the source uses a NaN sentinel for the same purpose,
// which Go's explicit bool makes clearer without losing the "not yet
// computed" semantics).
type decimalPayload struct {
	hdr  payload.Header
	dec  decimal.Decimal
	inf  bool // true for +/-infinity, which shopspring/decimal cannot represent
	neg  bool // sign, meaningful only when inf

	hasDouble bool
	double    float64

	hasText bool
	text    string
}

// Number returns a native (inline double) NUMBER value.
func Number(x float64) Value {
	return Value{kind: KindNumber, sub: subNumberNative, num: x}
}

// Int is a convenience constructor for integral values: a thin wrapper
// over Number. The result is a native number with no payload; it is not
// interned.
func Int(n int64) Value { return Number(float64(n)) }

// NumberWithLiteral parses text as an arbitrary-precision decimal literal
// using the thread-local decimal context:
//  1. Syntax error -> bare invalid.
//  2. NaN with diagnostic payload digits -> bare invalid.
//  3. NaN without payload -> native NaN.
//  4. Otherwise -> a decimal-literal number.
func NumberWithLiteral(text string) Value {
	res := decimalctx.Parse(text)
	switch res.Kind {
	case decimalctx.KindMalformed:
		return Invalid()
	case decimalctx.KindNaNPayload:
		return Invalid()
	case decimalctx.KindNaNPlain:
		return Number(math.NaN())
	case decimalctx.KindInfinite:
		inf := math.Inf(1)
		if res.Neg {
			inf = math.Inf(-1)
		}
		return Value{
			kind: KindNumber,
			sub:  subNumberDecimal,
			payload: &decimalPayload{
				hdr:       payload.NewHeader(),
				inf:       true,
				neg:       res.Neg,
				hasDouble: true,
				double:    inf,
			},
		}
	default: // KindFinite
		return Value{
			kind:    KindNumber,
			sub:     subNumberDecimal,
			payload: &decimalPayload{hdr: payload.NewHeader(), dec: res.Dec},
		}
	}
}

// NumberHasLiteral reports whether v is a decimal-literal number (as
// opposed to a native double). Peek.
func NumberHasLiteral(v Value) bool {
	return v.kind == KindNumber && v.sub == subNumberDecimal
}

// NumberGetLiteral returns the cached printable decimal text, or Null() for
// a native number or anything that isn't a NUMBER. A NaN literal is stored
// as a native number, so it also reports Null(); infinities report Null()
// too (caller normalizes). Peek.
func NumberGetLiteral(v Value) Value {
	if v.kind != KindNumber || v.sub != subNumberDecimal {
		return Null()
	}
	dp := v.payload.(*decimalPayload)
	if dp.inf {
		return Null()
	}
	if !dp.hasText {
		dp.hasText = true
		dp.text = internLiteralText(dp.dec.String(), func() string { return decimalctx.LiteralText(dp.dec) })
	}
	return String(dp.text)
}

// ValueAsDouble returns v's value as a float64. For a native number this is
// the stored double; for a decimal-literal number it reduces the decimal to
// the nearest float64 (cached after first computation). Peek; returns NaN
// for non-numbers.
func ValueAsDouble(v Value) float64 {
	if v.kind != KindNumber {
		return math.NaN()
	}
	if v.sub == subNumberNative {
		return v.num
	}
	dp := v.payload.(*decimalPayload)
	if !dp.hasDouble {
		dp.hasDouble = true
		dp.double = decimalctx.AsDouble(dp.dec)
	}
	return dp.double
}

// NumberIsNaN reports whether v is a NUMBER whose double value is NaN.
// Peek.
func NumberIsNaN(v Value) bool {
	if v.kind != KindNumber {
		return false
	}
	return math.IsNaN(ValueAsDouble(v))
}

// IsInteger reports whether v is a NUMBER whose fractional part is smaller
// in magnitude than DBL_EPSILON. Peek.
func IsInteger(v Value) bool {
	if v.kind != KindNumber {
		return false
	}
	return decimalctx.IsIntegerDouble(ValueAsDouble(v))
}

// NumberNegate consumes v and returns its negation, operating on the active
// representation (native double or decimal).
func NumberNegate(v Value) Value {
	if v.kind != KindNumber {
		Free(v)
		return Invalid()
	}
	if v.sub == subNumberNative {
		return Number(-v.num)
	}
	dp := v.payload.(*decimalPayload)
	if dp.inf {
		out := Value{
			kind: KindNumber, sub: subNumberDecimal,
			payload: &decimalPayload{hdr: payload.NewHeader(), inf: true, neg: !dp.neg, hasDouble: true, double: -dp.double},
		}
		Free(v)
		return out
	}
	neg := decimalctx.Negate(dp.dec)
	out := Value{kind: KindNumber, sub: subNumberDecimal, payload: &decimalPayload{hdr: payload.NewHeader(), dec: neg}}
	Free(v)
	return out
}

// NumberAbs consumes v and returns its absolute value.
func NumberAbs(v Value) Value {
	if v.kind != KindNumber {
		Free(v)
		return Invalid()
	}
	if v.sub == subNumberNative {
		return Number(math.Abs(v.num))
	}
	dp := v.payload.(*decimalPayload)
	if dp.inf {
		out := Value{
			kind: KindNumber, sub: subNumberDecimal,
			payload: &decimalPayload{hdr: payload.NewHeader(), inf: true, neg: false, hasDouble: true, double: math.Abs(dp.double)},
		}
		Free(v)
		return out
	}
	abs := decimalctx.Abs(dp.dec)
	out := Value{kind: KindNumber, sub: subNumberDecimal, payload: &decimalPayload{hdr: payload.NewHeader(), dec: abs}}
	Free(v)
	return out
}

// NumberCompare compares two NUMBER values, consuming both. If both are
// decimal-literal numbers, compares exactly; otherwise falls through to
// double comparison, losing precision for very large decimals; this
// mirrors the source rather than "fixing" it.
// NaNs compare via ordinary double semantics: any unordered comparison
// (either side NaN) reports the "greater" arm, matching the source's
// existing (if surprising) behavior.
func NumberCompare(a, b Value) int {
	defer Free(a)
	defer Free(b)
	if a.kind != KindNumber || b.kind != KindNumber {
		return 1
	}
	if a.sub == subNumberDecimal && b.sub == subNumberDecimal {
		da, db := a.payload.(*decimalPayload), b.payload.(*decimalPayload)
		if !da.inf && !db.inf {
			return decimalctx.Compare(da.dec, db.dec)
		}
	}
	x, y := ValueAsDouble(a), ValueAsDouble(b)
	switch {
	case x < y:
		return -1
	case x == y:
		return 0
	default:
		return 1 // covers x > y and any NaN-involving unordered comparison
	}
}

func freeNumberPayload(v Value) {
	if v.sub != subNumberDecimal {
		return
	}
	dp := v.payload.(*decimalPayload)
	if dp.hdr.Release() {
		// no nested owned values to free; decimal payloads hold no
		// sub-Values.
	}
}

func copyNumberPayload(v Value) {
	if v.sub != subNumberDecimal {
		return
	}
	v.payload.(*decimalPayload).hdr.Retain()
}

func numberRefcount(v Value) int32 {
	if v.sub != subNumberDecimal {
		return 1
	}
	return v.payload.(*decimalPayload).hdr.Count()
}
