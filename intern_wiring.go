package jval

import (
	"context"

	"github.com/unkn0wn-root/jval/intern"
	"github.com/unkn0wn-root/jval/internal/payload"
)

// internBackend, when non-nil, is consulted by String/StringSized to reuse
// an existing *stringPayload (bump its refcount) instead of allocating a
// fresh one for repeated literal text, and by NumberGetLiteral to memoize
// formatted decimal text. Disabled by default; see EnableInterning.
var internBackend intern.Backend

// EnableInterning installs backend as the package-wide interning pool.
// Pass nil to disable (the default). Not safe to call concurrently with
// String/NumberWithLiteral/NumberGetLiteral.
func EnableInterning(backend intern.Backend) { internBackend = backend }

var internCtx = context.Background()

// internString looks up a cached *stringPayload for data, retaining and
// returning it on hit; on miss (or when interning is disabled) it builds
// and caches a fresh payload from data, which the caller must already own
// a validated, owned copy of.
func internString(data []byte) *stringPayload {
	if internBackend == nil {
		return &stringPayload{hdr: payload.NewHeader(), data: data}
	}
	key := intern.StringKey("str", data)
	if v, ok := internBackend.Get(internCtx, key); ok {
		if sp, ok := v.(*stringPayload); ok {
			sp.hdr.Retain()
			activeHooks.InternHit(key)
			return sp
		}
	}
	sp := &stringPayload{hdr: payload.NewHeader(), data: data}
	if ok, err := internBackend.Set(internCtx, key, sp, int64(len(data))); !ok || err != nil {
		reason := "backend declined"
		if err != nil {
			reason = err.Error()
		}
		activeHooks.InternRejected(reason)
	}
	return sp
}

// internLiteralText memoizes a decimal literal's formatted text against
// literalKey (NumberGetLiteral passes the decimal's canonical String()
// form, not the original literal text), avoiding re-running the scientific-notation
// renderer for a value formatted more than once.
func internLiteralText(literalKey string, compute func() string) string {
	if internBackend == nil {
		return compute()
	}
	key := intern.StringKey("declit", []byte(literalKey))
	if v, ok := internBackend.Get(internCtx, key); ok {
		if b, ok := v.([]byte); ok {
			activeHooks.InternHit(key)
			return string(b)
		}
		if s, ok := v.(string); ok {
			activeHooks.InternHit(key)
			return s
		}
	}
	text := compute()
	if ok, err := internBackend.Set(internCtx, key, []byte(text), int64(len(text))); !ok || err != nil {
		reason := "backend declined"
		if err != nil {
			reason = err.Error()
		}
		activeHooks.InternRejected(reason)
	}
	return text
}
