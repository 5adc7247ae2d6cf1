package jval

import (
	"math"
	"testing"
)

func TestNumberWithLiteralScientificNotation(t *testing.T) {
	v := NumberWithLiteral("100000000000000000000")
	if !NumberHasLiteral(v) {
		t.Fatal("expected decimal-literal representation")
	}
	lit := NumberGetLiteral(v)
	if got := StringValue(lit); got != "1E+20" {
		t.Fatalf("literal text = %q, want 1E+20", got)
	}
	Free(lit)
	if got := ValueAsDouble(v); got != 1e20 {
		t.Fatalf("as double = %v, want 1e20", got)
	}
}

func TestNumberWithLiteralNaNModes(t *testing.T) {
	if GetKind(NumberWithLiteral("nan123")) != KindInvalid {
		t.Fatal("NaN with payload should be a bare invalid value")
	}
	plain := NumberWithLiteral("nan")
	if !NumberIsNaN(plain) {
		t.Fatal("plain NaN should report NumberIsNaN")
	}
	if NumberHasLiteral(plain) {
		t.Fatal("plain NaN should be a native number, not decimal-literal")
	}
}

func TestNumberNegateAndAbs(t *testing.T) {
	if got := ValueAsDouble(NumberNegate(Number(5))); got != -5 {
		t.Fatalf("negate(5) = %v, want -5", got)
	}
	if got := ValueAsDouble(NumberAbs(Number(-5))); got != 5 {
		t.Fatalf("abs(-5) = %v, want 5", got)
	}
}

func TestNumberCompare(t *testing.T) {
	if NumberCompare(Number(1), Number(2)) >= 0 {
		t.Fatal("1 should compare less than 2")
	}
	if NumberCompare(Number(2), Number(2)) != 0 {
		t.Fatal("2 should compare equal to 2")
	}
	if NumberCompare(Number(math.NaN()), Number(1)) <= 0 {
		t.Fatal("NaN comparison should report the unordered/greater arm")
	}
}

func TestIsInteger(t *testing.T) {
	if !IsInteger(Number(3)) {
		t.Fatal("3 should be an integer")
	}
	if IsInteger(Number(3.5)) {
		t.Fatal("3.5 should not be an integer")
	}
}
