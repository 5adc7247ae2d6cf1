// Package jval implements the core value representation of a JSON-oriented
// dynamic-value library: null, boolean, number, string, array, object, and
// an error-carrying "invalid" variant, together with reference-counting,
// copy-on-write, slicing, hashing, equality, and containment over them.
//
// Every Value is a small stack-copyable descriptor (see Kind and Value).
// Kinds without a heap payload (invalid, null, true, false, native-double
// number) cost nothing beyond the descriptor itself; string/array/object
// and decimal-literal numbers carry a refcounted heap payload.
//
// Ownership flows linearly through the API: constructors return an owned
// Value (refcount 1 for fresh allocations); Copy bumps the refcount; Free
// drops it, tearing down nested owned values when the count reaches zero.
// Mutators (array/object/string builders) consume their receiver and return
// a new Value, mutating in place only when the payload is uniquely held
// (copy-on-write). This package never retains a Value across calls on your
// behalf — every function that "consumes" an argument expects exactly one
// Free (directly or via another consumer) per Value produced.
//
// Components:
//   - Kind/Value: the tagged-union handle (value.go).
//   - Copy/Free/GetRefcount: the refcount primitive (refcount.go).
//   - Number: native float64 or, in decimal-literal mode, an
//     arbitrary-precision decimal backed by internal/decimalctx
//     (number.go).
//   - String: a refcounted byte buffer with a cached MurmurHash3-32 hash
//     (string.go).
//   - Array: a refcounted element buffer; a Value carries an (offset, size)
//     window onto it for O(1) sub-slicing (array.go).
//   - Object: a refcounted chained hash table, grown in place (object.go).
//   - Equal/Identical/Contains/KindName: top-level operations (equal.go).
//
// The expression language, parser, VM, bytecode, built-ins, JSON text
// parsing/printing, I/O, and CLI surfaces are out of scope: jval is the
// foundation an external language processor builds on.
package jval
