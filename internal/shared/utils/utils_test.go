package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Dune", "dune"},
		{"spaces become hyphens", "The Left Hand of Darkness", "the-left-hand-of-darkness"},
		{"punctuation dropped", "Dune: Messiah!", "dune-messiah"},
		{"underscores treated as separators", "foo_bar_baz", "foo-bar-baz"},
		{"repeated separators collapse", "a  --  b", "a-b"},
		{"leading and trailing trimmed", "  !Hello!  ", "hello"},
		{"digits survive", "Catch 22", "catch-22"},
		{"empty input", "", ""},
		{"only punctuation", "?!*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		name      string
		param     string
		fallback  string
		wantField string
		wantDesc  bool
	}{
		{"empty uses default", "", "title", "title", false},
		{"ascending field", "name", "title", "name", false},
		{"descending field", "-created_at", "title", "created_at", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, desc := ParseOrdering(tt.param, tt.fallback)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("a2b5c1de-3f41-4a6b-9c8d-0e1f2a3b4c5d"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
