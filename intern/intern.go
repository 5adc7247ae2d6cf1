// Package intern defines the pluggable value-reuse backend used to turn a
// repeated allocation into a bumped refcount. The copy-on-write discipline
// elsewhere already demands refcounting; this package decides WHEN to
// reuse instead of allocate, not how ownership is tracked once shared.
//
// Interning here is strictly an allocation optimization: two interned
// values must still compare Equal/Identical exactly as two independently
// constructed ones would, and a rejected or evicted entry must never be
// observable except as an extra allocation.
package intern

import "context"

// Backend is the storage abstraction a cache-like library (ristretto,
// bigcache) sits behind, generalized from byte-slice-only storage to an
// opaque `any` payload so callers can intern live pointers (bump a
// refcount) as well as raw bytes (memoize formatted text).
//
// Implementations must be safe for concurrent use. A Get miss and a Get
// error are NOT distinguished at this layer: callers that need to tell
// "not cached" from "intern backend broken" should use Set's error return
// to discover the latter.
type Backend interface {
	// Get returns (value, true) on hit; (nil, false) on miss.
	Get(ctx context.Context, key string) (any, bool)

	// Set stores value under key with the given cost hint (backend-defined
	// units; ristretto treats this as a weight, bigcache ignores it).
	// ok=false means the backend declined the write under pressure; this is
	// not an error, just a cache-effectiveness signal.
	Set(ctx context.Context, key string, value any, cost int64) (ok bool, err error)

	// Del removes key, best-effort.
	Del(ctx context.Context, key string)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
