// Package payload implements the single-counter refcount header shared by
// every jval heap payload (invalid-with-message, decimal number, string,
// array, object). It is the "memory & refcount primitive" of the value
// core: allocation itself goes through the Go runtime (which is already
// fatal-on-OOM, matching the source's abort-on-allocation-failure
// contract), and Header supplies the copy-on-write bookkeeping on top.
package payload

// Header is embedded by value (by pointer) in every heap payload struct.
// It is not safe for concurrent use without external synchronization: the
// refcounting model is single-threaded-per-payload, meaning a payload may
// only be mutated by a goroutine that holds the sole reference to it.
type Header struct {
	refs int32
}

// NewHeader returns a Header for a freshly allocated payload (refcount 1).
func NewHeader() Header { return Header{refs: 1} }

// Retain increments the refcount. Called by Copy on every heap-backed value.
func (h *Header) Retain() { h.refs++ }

// Release decrements the refcount and reports whether it reached zero (the
// caller must then tear down nested owned values and drop the payload).
func (h *Header) Release() bool {
	h.refs--
	return h.refs == 0
}

// Count returns the current refcount. A nil Header (never constructed,
// i.e. no payload) is not a valid call site; callers must check for the
// "has heap payload" bit first, matching GetRefcount's "1 for non-heap
// handles" rule being handled one level up.
func (h *Header) Count() int32 { return h.refs }

// Unique reports whether this payload has exactly one owner, the
// precondition for in-place copy-on-write mutation.
func (h *Header) Unique() bool { return h.refs == 1 }
