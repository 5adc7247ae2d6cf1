// Package utf8x implements the small set of UTF-8 primitives the value
// core needs: decoding one code point with replacement-on-error, encoding
// one code point, validating a byte range, and recovering a sequence's
// byte length from its leading byte. The standard library's unicode/utf8
// already implements well-tested versions of exactly these operations; no
// third-party codec in the retrieval pack supersedes it, so this package is
// a thin wrapper rather than a reimplementation (see DESIGN.md).
package utf8x

import "unicode/utf8"

// ReplacementChar is substituted for any malformed byte/sequence.
const ReplacementChar rune = utf8.RuneError

// DecodeNext decodes the code point starting at p[0], returning the decoded
// rune and the number of bytes it consumed. On a malformed sequence it
// returns (-1, 1): the caller advances by one byte and may substitute
// ReplacementChar. An empty slice returns (-1, 0).
func DecodeNext(p []byte) (cp rune, size int) {
	if len(p) == 0 {
		return -1, 0
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		return -1, 1
	}
	return r, size
}

// Encode writes the UTF-8 encoding of cp into out and returns the byte
// count (1-4). out must have length >= utf8.UTFMax. Invalid code points
// (surrogates, out of range) encode as ReplacementChar.
func Encode(cp rune, out []byte) int {
	if !validCodePoint(cp) {
		cp = ReplacementChar
	}
	return utf8.EncodeRune(out, cp)
}

// IsValid reports whether p is entirely well-formed UTF-8.
func IsValid(p []byte) bool { return utf8.Valid(p) }

// LeadingByteLength returns the expected sequence length (1-4) for a
// UTF-8 leading byte. Continuation bytes and invalid leaders report 1 so
// callers always make forward progress.
func LeadingByteLength(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// CodepointCount walks p and counts code points, treating malformed
// sequences as one code point each (consistent with replacement semantics).
func CodepointCount(p []byte) int {
	n := 0
	for len(p) > 0 {
		_, size := DecodeNext(p)
		if size == 0 {
			break
		}
		p = p[size:]
		n++
	}
	return n
}

// ReplaceInvalid copies src, rewriting every malformed byte/sequence as
// U+FFFD. If src is already valid UTF-8 it is returned unchanged (no copy).
func ReplaceInvalid(src []byte) []byte {
	if IsValid(src) {
		return src
	}
	out := make([]byte, 0, len(src)+len(src)/2+1)
	var buf [utf8.UTFMax]byte
	p := src
	for len(p) > 0 {
		cp, size := DecodeNext(p)
		if cp == -1 {
			n := Encode(ReplacementChar, buf[:])
			out = append(out, buf[:n]...)
			p = p[size:]
			continue
		}
		out = append(out, p[:size]...)
		p = p[size:]
	}
	return out
}

func validCodePoint(cp rune) bool {
	if cp < 0 || cp > 0x10FFFF {
		return false
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		return false
	}
	return true
}
