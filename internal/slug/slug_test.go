package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation stripped", "Top 10 Career Tips!", "top-10-career-tips"},
		{"multiple spaces", "So   many   spaces", "so-many-spaces"},
		{"accents", "Étude für Élise", "etude-fur-elise"},
		{"special chars", "Career & Finance: A Guide?", "career-finance-a-guide"},
		{"leading trailing", "  Trim Me  ", "trim-me"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"a", "top-10-career-tips", "a1-b2", "2025"}
	for _, s := range valid {
		assert.True(t, IsValid(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space", "ünïcode"}
	for _, s := range invalid {
		assert.False(t, IsValid(s), "expected %q to be invalid", s)
	}
}

func TestMakeProducesValidSlugs(t *testing.T) {
	titles := []string{
		"Top 10 Career Opportunities in Technology for 2025",
		"How to Finance Your Education Abroad!",
		"Job Tips: Acing the Interview",
	}
	for _, title := range titles {
		assert.True(t, IsValid(Make(title)), "Make(%q) produced an invalid slug", title)
	}
}
