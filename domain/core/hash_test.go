package core

import (
	"testing"
)

// TestHashFieldsDeterminism tests that the same values always hash the same
func TestHashFieldsDeterminism(t *testing.T) {
	a := HashFields([]string{"Ana", "91", "true"})
	b := HashFields([]string{"Ana", "91", "true"})
	if a != b {
		t.Errorf("Expected identical hashes, got %s and %s", a, b)
	}
	if a.String() == "" {
		t.Error("Expected non-empty hash")
	}
}

// TestHashFieldsSeparator tests that adjacent cells cannot collide
func TestHashFieldsSeparator(t *testing.T) {
	a := HashFields([]string{"ab", "cd"})
	b := HashFields([]string{"a", "bcd"})
	if a == b {
		t.Errorf("Expected distinct hashes for shifted cell boundaries, got %s", a)
	}
}

// TestHashFieldsOrderSensitive tests that field order changes the hash
func TestHashFieldsOrderSensitive(t *testing.T) {
	a := HashFields([]string{"x", "y"})
	b := HashFields([]string{"y", "x"})
	if a == b {
		t.Error("Expected order-sensitive hashing")
	}
}

// TestHashShort tests display truncation
func TestHashShort(t *testing.T) {
	h := NewHash([]byte("payload"))
	if len(h.Short()) != 8 {
		t.Errorf("Expected 8-char fragment, got %q", h.Short())
	}
	if Hash("abc").Short() != "abc" {
		t.Errorf("Expected short hashes returned as-is, got %q", Hash("abc").Short())
	}
}
