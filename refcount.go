package jval

// Copy returns a new handle sharing v's payload (if any), incrementing its
// refcount. The tagged union stays closed: every kind is listed here
// explicitly rather than asking the payload to copy itself. Peek; v
// remains valid and owned by the caller.
func Copy(v Value) Value {
	if !hasHeapPayload(v) {
		return v
	}
	switch v.kind {
	case KindInvalid:
		if v.sub == subInvalidMessage {
			v.payload.(*invalidPayload).hdr.Retain()
		}
	case KindNumber:
		copyNumberPayload(v)
	case KindString:
		copyStringPayload(v)
	case KindArray:
		copyArrayPayload(v)
	case KindObject:
		copyObjectPayload(v)
	}
	return v
}

// Free releases v's reference, recursively tearing down any nested owned
// values once the last reference drops. Every jval operation that
// documents "consumes" a Value calls this exactly once on it.
func Free(v Value) {
	if !hasHeapPayload(v) {
		return
	}
	switch v.kind {
	case KindInvalid:
		if v.sub == subInvalidMessage {
			ip := v.payload.(*invalidPayload)
			if ip.hdr.Release() {
				Free(ip.msg)
			}
		}
	case KindNumber:
		freeNumberPayload(v)
	case KindString:
		freeStringPayload(v)
	case KindArray:
		freeArrayPayload(v)
	case KindObject:
		freeObjectPayload(v)
	}
}

// GetRefcount returns v's payload refcount, or 1 for a value with no heap
// payload: every handle is conceptually "its own owner". Peek.
func GetRefcount(v Value) int32 {
	if !hasHeapPayload(v) {
		return 1
	}
	switch v.kind {
	case KindInvalid:
		if v.sub == subInvalidMessage {
			return v.payload.(*invalidPayload).hdr.Count()
		}
		return 1
	case KindNumber:
		return numberRefcount(v)
	case KindString:
		return stringRefcount(v)
	case KindArray:
		return arrayRefcount(v)
	case KindObject:
		return objectRefcount(v)
	}
	return 1
}
