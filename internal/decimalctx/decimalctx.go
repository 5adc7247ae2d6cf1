// Package decimalctx implements the thread-local decimal arithmetic
// context: a lazily created, per-caller context used when parsing and
// formatting arbitrary-precision decimal number literals.
//
// Go exposes no OS-thread-local storage to user code (goroutines are
// multiplexed across OS threads transparently by the runtime), so the
// source's "one singleton per OS thread, created on first use, destroyed on
// thread exit" contract is approximated with a channel-backed pool of
// reusable contexts: Acquire borrows one, Release returns it. This keeps the
// "lazy init, reused, eventually reclaimed" shape the source specifies
// without fabricating a false notion of per-goroutine identity (a goroutine
// has no exit hook to destroy anything at). See DESIGN.md for the full
// rationale.
package decimalctx

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxDigits bounds precision so exponent-difference arithmetic inside
// shopspring/decimal cannot overflow its int32 exponent type.
const maxDigits int32 = 1 << 20

// dblEpsilon mirrors C's DBL_EPSILON; the standard library has no exported
// constant for it.
const dblEpsilon = 2.220446049250313e-16

// Context holds the per-caller arithmetic settings: precision, clamped per
// maxDigits, with traps disabled (errors surface as ordinary return
// values, never panics).
type Context struct {
	Digits int32
}

var (
	lifecycleMu      chan struct{} // one-slot channel used as a mutex by SetLifecycleHooks; see init()
	onContextCreate  func()
	onContextDestroy func()
)

func init() {
	lifecycleMu = make(chan struct{}, 1)
	lifecycleMu <- struct{}{}
}

// SetLifecycleHooks installs callbacks fired on context creation and
// explicit destruction (Drop). Used by the top-level package to surface
// diagnostics through jval.Hooks. Either argument may be nil.
func SetLifecycleHooks(create, destroy func()) {
	<-lifecycleMu
	onContextCreate, onContextDestroy = create, destroy
	lifecycleMu <- struct{}{}
}

func newContext() *Context {
	if onContextCreate != nil {
		onContextCreate()
	}
	return &Context{Digits: maxDigits}
}

// pool is created lazily on first Acquire so SetLifecycleHooks can still be
// called beforehand by an embedding application during process init.
var pool = &lazyPool{}

type lazyPool struct {
	ch chan *Context
}

func (p *lazyPool) get() *Context {
	if p.ch == nil {
		p.ch = make(chan *Context, 64)
	}
	select {
	case c := <-p.ch:
		return c
	default:
		return newContext()
	}
}

func (p *lazyPool) put(c *Context) {
	if p.ch == nil {
		p.ch = make(chan *Context, 64)
	}
	select {
	case p.ch <- c:
	default: // pool full; let GC reclaim it
	}
}

// Acquire borrows a Context. Always paired with Release (or Drop, to
// exercise the destroy-hook path explicitly).
func Acquire() *Context { return pool.get() }

// Release returns a Context to the pool for reuse.
func Release(c *Context) {
	if c == nil {
		return
	}
	pool.put(c)
}

// Drop discards a Context instead of pooling it, invoking the destroy hook.
// Normal operation always goes through Release; Drop exists so the
// lifecycle contract (create on first use, destroy on exit) is directly
// testable without waiting on GC.
func Drop(c *Context) {
	if c == nil {
		return
	}
	if onContextDestroy != nil {
		onContextDestroy()
	}
}

// Kind classifies the result of parsing a decimal literal.
type Kind uint8

const (
	KindMalformed Kind = iota
	KindFinite
	KindNaNPayload // NaN carrying diagnostic payload digits -> bare invalid per spec
	KindNaNPlain   // NaN without payload -> native NaN value
	KindInfinite
)

// ParseResult is the outcome of Parse.
type ParseResult struct {
	Kind Kind
	Dec  decimal.Decimal
	Neg  bool // meaningful only for KindInfinite
}

// Parse parses a decimal literal the way decNumber-family libraries do:
// ordinary decimal syntax, "nan"/"snan" (optionally with trailing
// diagnostic digits, which mark it as payload-carrying), and "inf"/
// "infinity", all case-insensitive and optionally signed.
func Parse(text string) ParseResult {
	c := Acquire()
	defer Release(c)
	return parseWith(c, text)
}

func parseWith(_ *Context, text string) ParseResult {
	t := strings.TrimSpace(text)
	if t == "" {
		return ParseResult{Kind: KindMalformed}
	}
	neg := false
	body := t
	switch body[0] {
	case '+':
		body = body[1:]
	case '-':
		neg = true
		body = body[1:]
	}
	lower := strings.ToLower(body)
	switch {
	case lower == "inf" || lower == "infinity":
		return ParseResult{Kind: KindInfinite, Neg: neg}
	case strings.HasPrefix(lower, "snan"):
		if lower != "snan" {
			return ParseResult{Kind: KindNaNPayload}
		}
		return ParseResult{Kind: KindNaNPlain}
	case strings.HasPrefix(lower, "nan"):
		if lower != "nan" {
			return ParseResult{Kind: KindNaNPayload}
		}
		return ParseResult{Kind: KindNaNPlain}
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return ParseResult{Kind: KindMalformed}
	}
	return ParseResult{Kind: KindFinite, Dec: d}
}

// AsDouble reduces d to the nearest float64: the "shortest form that
// round-trips through 64-bit float precision" reduction every decimal
// number needs when a native double comparison or interop call is made.
func AsDouble(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// IsIntegerDouble reports whether f has no significant fractional part
// (fractional part smaller than DBL_EPSILON in magnitude).
func IsIntegerDouble(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	frac := f - math.Trunc(f)
	return math.Abs(frac) < dblEpsilon
}

// LiteralText renders d in normalized scientific notation
// ("<digits>[.<digits>]E<+|-><exp>"), e.g. 100000000000000000000 ->
// "1E+20".
func LiteralText(d decimal.Decimal) string {
	if d.IsZero() {
		return "0E+0"
	}
	coeff := d.Coefficient()
	exp := d.Exponent()

	s := coeff.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
		exp++
	}

	sciExp := exp + int32(len(s)) - 1
	mantissa := s
	if len(s) > 1 {
		mantissa = s[:1] + "." + s[1:]
	}

	sign := ""
	if neg {
		sign = "-"
	}
	expSign := "+"
	e := sciExp
	if e < 0 {
		expSign = "-"
		e = -e
	}
	return fmt.Sprintf("%s%sE%s%d", sign, mantissa, expSign, e)
}

// Compare compares two finite decimals: -1, 0, or +1.
func Compare(a, b decimal.Decimal) int { return a.Cmp(b) }

// Negate and Abs operate on the active decimal representation, allocating a
// fresh decimal.Decimal (shopspring/decimal values are immutable).
func Negate(d decimal.Decimal) decimal.Decimal { return d.Neg() }
func Abs(d decimal.Decimal) decimal.Decimal    { return d.Abs() }
