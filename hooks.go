package jval

import "github.com/unkn0wn-root/jval/internal/decimalctx"

// Hooks are lightweight callbacks for high-signal diagnostic events.
// Implementations MUST be cheap and non-blocking; do not perform I/O. If
// work may block, buffer it and drop on backpressure (best effort), the
// way jval/hooks/async does.
type Hooks interface {
	// PayloadLeaked is reserved for a caller-supplied Hooks implementation
	// that tracks allocations externally and wants a place to report a
	// payload it determined was never freed. jval has no built-in
	// allocation tracker and never calls this method itself.
	PayloadLeaked(kind Kind, info string)
	// DecimalContextCreated fires when the thread-local decimal context
	// pool allocates a new context rather than reusing a pooled one.
	DecimalContextCreated()
	// DecimalContextDestroyed fires when a decimal context is explicitly
	// dropped rather than returned to the pool.
	DecimalContextDestroyed()
	// InternRejected fires when the interning pool declines to cache a
	// candidate value (oversized, backend full, or backend error).
	InternRejected(reason string)
	// InternHit fires when a lookup reuses an interned payload instead of
	// allocating.
	InternHit(key string)
}

// NopHooks is a default no-op implementation.
type NopHooks struct{}

func (NopHooks) PayloadLeaked(Kind, string)  {}
func (NopHooks) DecimalContextCreated()      {}
func (NopHooks) DecimalContextDestroyed()    {}
func (NopHooks) InternRejected(string)       {}
func (NopHooks) InternHit(string)            {}

// Multi returns a Hooks that fans out to all provided hooks, in order.
// Nil entries are ignored. Panics from a hook propagate to the caller.
func Multi(hs ...Hooks) Hooks {
	nn := make([]Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nn = append(nn, h)
		}
	}
	return multiHooks(nn)
}

type multiHooks []Hooks

func (m multiHooks) PayloadLeaked(k Kind, info string) {
	for _, h := range m {
		h.PayloadLeaked(k, info)
	}
}
func (m multiHooks) DecimalContextCreated() {
	for _, h := range m {
		h.DecimalContextCreated()
	}
}
func (m multiHooks) DecimalContextDestroyed() {
	for _, h := range m {
		h.DecimalContextDestroyed()
	}
}
func (m multiHooks) InternRejected(reason string) {
	for _, h := range m {
		h.InternRejected(reason)
	}
}
func (m multiHooks) InternHit(key string) {
	for _, h := range m {
		h.InternHit(key)
	}
}

var activeHooks Hooks = NopHooks{}

// SetHooks installs h as the package-wide diagnostic sink, wiring it into
// the thread-local decimal context's create/destroy lifecycle. Pass
// NopHooks{} (the default) to disable. Not safe to call concurrently with
// decimal parsing.
func SetHooks(h Hooks) {
	if h == nil {
		h = NopHooks{}
	}
	activeHooks = h
	decimalctx.SetLifecycleHooks(h.DecimalContextCreated, h.DecimalContextDestroyed)
}
