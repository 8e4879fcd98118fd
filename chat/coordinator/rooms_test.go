package coordinator

import (
	"strings"
	"testing"
)

func TestRoomDirectory(t *testing.T) {
	dir := newRoomDirectory()

	t.Run("created on first join", func(t *testing.T) {
		dir.add("general", "c1")
		if dir.count("general") != 1 {
			t.Errorf("Expected count 1, got %d", dir.count("general"))
		}
	})

	t.Run("count of missing room is zero", func(t *testing.T) {
		if dir.count("nope") != 0 {
			t.Errorf("Expected count 0, got %d", dir.count("nope"))
		}
	})

	t.Run("removed when empty", func(t *testing.T) {
		dir.add("general", "c2")
		dir.remove("general", "c1")
		if dir.count("general") != 1 {
			t.Errorf("Expected count 1, got %d", dir.count("general"))
		}
		dir.remove("general", "c2")
		for _, name := range dir.names() {
			if name == "general" {
				t.Error("Expected empty room removed from directory")
			}
		}
	})

	t.Run("remove of non-member reports false", func(t *testing.T) {
		dir.add("dev", "c3")
		if dir.remove("dev", "c4") {
			t.Error("Expected false for non-member")
		}
		if dir.remove("ghost", "c3") {
			t.Error("Expected false for missing room")
		}
	})
}

func TestNormalizeRoomName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "dev", "dev"},
		{"trimmed", "  dev  ", "dev"},
		{"empty falls back", "", "general"},
		{"whitespace falls back", "   ", "general"},
		{"overlong truncated", strings.Repeat("x", 100), strings.Repeat("x", 64)},
		{"multibyte truncated on rune boundary", strings.Repeat("日", 100), strings.Repeat("日", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeRoomName(tt.raw, "general", 64)
			if got != tt.want {
				t.Errorf("normalizeRoomName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
