package id

import (
	"testing"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()

	if !IsValid(a) {
		t.Errorf("New() produced invalid identifier: %s", a)
	}
	if a == b {
		t.Error("New() produced the same identifier twice")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid lowercase", "550e8400-e29b-41d4-a716-446655440000", true},
		{"valid uppercase normalized", "550E8400-E29B-41D4-A716-446655440000", true},
		{"empty", "", false},
		{"too short", "550e8400-e29b-41d4", false},
		{"missing hyphens", "550e8400e29b41d4a716446655440000", false},
		{"non-hex", "550e8400-e29b-41d4-a716-44665544zzzz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.id); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestAllocatorNeverRepeats(t *testing.T) {
	a := NewAllocator()
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := a.Next()
		if seen[id] {
			t.Fatalf("allocator repeated identifier %s after %d issues", id, i)
		}
		seen[id] = true
	}
}

func TestAllocatorReserve(t *testing.T) {
	a := NewAllocator()

	if !a.Reserve("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("first Reserve should succeed")
	}
	if a.Reserve("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("second Reserve of same id should fail")
	}

	// A reserved id is never issued
	for i := 0; i < 100; i++ {
		if a.Next() == "550e8400-e29b-41d4-a716-446655440000" {
			t.Fatal("allocator issued a reserved identifier")
		}
	}
}
