package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGenerateISBN13Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// The generator is random rather than shrinkable input, so each
		// rapid iteration just draws a fresh value.
		isbn := GenerateISBN13()

		if len(isbn) != 13 {
			t.Fatalf("got %d characters: %q", len(isbn), isbn)
		}
		prefix := isbn[:3]
		if prefix != "978" && prefix != "979" {
			t.Fatalf("unexpected prefix %q", prefix)
		}
		if !ValidISBN13(isbn) {
			t.Fatalf("checksum does not hold for %q", isbn)
		}
	})
}

func TestValidISBN13(t *testing.T) {
	tests := []struct {
		name string
		isbn string
		want bool
	}{
		{"known good", "9780306406157", true},
		{"corrupted check digit", "9780306406158", false},
		{"too short", "978030640615", false},
		{"too long", "97803064061570", false},
		{"non-digit", "978030640615X", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidISBN13(tt.isbn))
		})
	}
}

func TestCheckDigit(t *testing.T) {
	// 9780306406157 is the canonical worked example: weighted sum of the
	// first 12 digits is 93, so the check digit is 7.
	assert.Equal(t, 7, checkDigit("978030640615"))
	assert.Equal(t, 0, checkDigit("000000000000"))
}
