// Package wire contains the compact, versioned on-the-wire frame jval uses
// to store an encoded Snapshot in an external byte store or transport.
//
// Encoding choices:
//   - All integers are big-endian (network byte order).
//   - A 4-byte ASCII magic ("JVAL") allows quick format discrimination.
//   - A 1-byte version enables forward/backward compatibility in place.
//   - The payload after the fixed header is codec-opaque ([]byte): whatever
//     codec.CBOR/Msgpack/Protobuf produced from a jval.Snapshot.
//   - Decode is written for bounds safety: every slice operation is
//     preceded by a length check; on any mismatch it returns ErrCorrupt.
//   - Decode returns a subslice of the original buffer for the payload
//     (zero-copy). Holding that subslice keeps the backing array alive;
//     copy it if you need to retain it past the frame's lifetime.
//
// Strict framing: Decode requires the frame to consume the entire buffer
// (no trailing bytes), which detects corruption and foreign writers early.
//
// Unlike a generation-coherence cache, a jval.Value carries no notion of
// staleness, so this package frames single values only; there is no bulk
// multi-key variant (see DESIGN.md for why that teacher concern was
// dropped rather than adapted).
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

// ErrCorrupt is returned when a byte slice doesn't conform to the expected
// structure (bad magic, version, or length).
var ErrCorrupt = errors.New("jval/codec/wire: corrupt frame")

var magic4 = [...]byte{'J', 'V', 'A', 'L'}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames payload.
//
// Layout (big-endian): magic(4) | ver(1) | vlen(u32) | payload(vlen)
func Encode(payload []byte) []byte {
	buf := make([]byte, 0, 4+1+4+len(payload))
	buf = append(buf, magic4[:]...)
	buf = append(buf, version)
	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf = append(buf, u4[:]...)
	buf = append(buf, payload...)
	return buf
}

// Decode parses a frame and returns its payload as a zero-copy subslice of
// b.
func Decode(b []byte) ([]byte, error) {
	const hdr = 4 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return nil, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[5:9]))
	if vlen < 0 || 9+vlen != len(b) {
		return nil, ErrCorrupt
	}
	return b[9 : 9+vlen], nil
}
