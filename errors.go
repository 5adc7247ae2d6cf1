package jval

import "github.com/unkn0wn-root/jval/internal/payload"

// invalidPayload is the refcounted wrapper around an invalid value's
// optional message: a bare invalid value has no payload at all (the
// zero-cost common case);
// InvalidWithMessage allocates one holding the message value.
type invalidPayload struct {
	hdr payload.Header
	msg Value
}

// InvalidWithMessage returns an invalid value carrying msg as its message.
// Consumes msg.
func InvalidWithMessage(msg Value) Value {
	hdr := payload.NewHeader()
	return Value{
		kind:    KindInvalid,
		sub:     subInvalidMessage,
		payload: &invalidPayload{hdr: hdr, msg: msg},
	}
}

// invalidWithText is a small convenience used throughout this package to
// build an error taxonomy without constructing an intermediate String
// value at every call site.
func invalidWithText(text string) Value {
	return InvalidWithMessage(String(text))
}

// InvalidHasMessage reports whether v is an invalid value carrying a
// message. Consumes v; most callers instead use InvalidGetMessage
// directly.
func InvalidHasMessage(v Value) bool {
	has := v.kind == KindInvalid && v.sub == subInvalidMessage
	Free(v)
	return has
}

// InvalidGetMessage consumes v and returns its message, or Null() if v is a
// bare invalid (or not an invalid value at all).
func InvalidGetMessage(v Value) Value {
	if v.kind != KindInvalid || v.sub != subInvalidMessage {
		Free(v)
		return Null()
	}
	ip := v.payload.(*invalidPayload)
	msg := Copy(ip.msg)
	Free(v)
	return msg
}

// Error taxonomy message text.
const (
	errOutOfBoundsNegativeIndex = "Out of bounds negative array index"
	errArrayIndexTooLarge       = "Array index too large"
	errRepeatTooLong            = "Repeat string result too long"
	errObjectTooBig             = "Object too big"
)
