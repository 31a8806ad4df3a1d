package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"fits", "alice", 10, "alice"},
		{"exact", "alice", 5, "alice"},
		{"cut", "alexander", 5, "alex…"},
		{"one cell", "alexander", 1, "a"},
		{"no limit", "  bob  ", 0, "bob"},
		{"wide runes", "日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.value, tt.limit); got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("http://example.com/api/v1/users", 15)
	if runewidth.StringWidth(got) > 15 {
		t.Fatalf("truncateMiddle width = %d, want <= 15 (%q)", runewidth.StringWidth(got), got)
	}
	if got[:4] != "http" || got[len(got)-5:] != "users" {
		t.Fatalf("truncateMiddle = %q, want both ends kept", got)
	}
	if got := truncateMiddle("short", 15); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcdef", 4, "abc…"},
		{"a\nb", 4, "a b "},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.value, tt.width); got != tt.want {
			t.Fatalf("fit(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}
