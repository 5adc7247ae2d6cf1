package jval

import (
	"testing"
	"unicode/utf8"
)

func TestStringRepeat(t *testing.T) {
	if got := StringValue(StringRepeat(String("ab"), 3)); got != "ababab" {
		t.Fatalf("repeat(ab,3) = %q, want ababab", got)
	}
	if kind := GetKind(StringRepeat(String("a"), -1)); kind != KindNull {
		t.Fatalf("repeat(a,-1) kind = %v, want null", kind)
	}
	out := StringRepeat(String("ab"), maxIntLimit)
	if GetKind(out) != KindInvalid {
		t.Fatalf("repeat overflow kind = %v, want invalid", GetKind(out))
	}
	msg := InvalidGetMessage(out)
	if got := StringValue(msg); got != errRepeatTooLong {
		t.Fatalf("repeat overflow message = %q, want %q", got, errRepeatTooLong)
	}
	Free(msg)
}

func TestStringSplitTrailingEmpty(t *testing.T) {
	out := StringSplit(String("a,b,"), String(","))
	if got := ArrayLength(out); got != 3 {
		t.Fatalf("split length = %d, want 3", got)
	}
	want := []string{"a", "b", ""}
	for i, w := range want {
		if got := StringValue(ArrayGet(out, i)); got != w {
			t.Fatalf("split[%d] = %q, want %q", i, got, w)
		}
	}
	Free(out)
}

func TestStringContainsSubstring(t *testing.T) {
	if !Contains(String("hello"), String("ell")) {
		t.Fatal("expected hello to contain ell")
	}
	if !Contains(String("hello"), String("")) {
		t.Fatal("every string should contain the empty string")
	}
	if Contains(String("hello"), String("xyz")) {
		t.Fatal("hello should not contain xyz")
	}
}

func TestStringHashIsCachedAndConsistentWithEqual(t *testing.T) {
	a := String("same text")
	b := String("same text")
	if !Equal(Copy(a), Copy(b)) {
		t.Fatal("expected equal strings")
	}
	h1 := StringHash(a)
	h2 := StringHash(a)
	if h1 != h2 {
		t.Fatalf("hash changed across calls: %d != %d", h1, h2)
	}
	if StringHash(a) != StringHash(b) {
		t.Fatal("equal strings must hash the same")
	}
	Free(a)
	Free(b)
}

func TestStringSizedReplacesInvalidUTF8(t *testing.T) {
	invalid := []byte{0x68, 0x65, 0xFF, 0x6C, 0x6C, 0x6F}
	v := StringSized(invalid)
	if !utf8.Valid(StringBytes(v)) {
		t.Fatalf("expected valid UTF-8 output, got %q", StringBytes(v))
	}
	Free(v)
}
