package slugify

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "Hello World", "hello-world"},
		{"already a slug", "hello-world", "hello-world"},
		{"single word", "Journal", "journal"},
		{"numbers kept", "Top 10 Posts of 2024", "top-10-posts-of-2024"},

		// Punctuation stripping
		{"apostrophe", "Don't Panic", "dont-panic"},
		{"mixed punctuation", "Go, Gin & Postgres!", "go-gin-postgres"},
		{"unicode stripped", "Café Culture", "caf-culture"},
		{"emoji stripped", "\U0001F680 Launch Day", "launch-day"},

		// Whitespace and hyphen handling
		{"trim whitespace", "  spaced  ", "spaced"},
		{"inner whitespace run", "a   b\tc", "a-b-c"},
		{"hyphen run collapsed", "one--two---three", "one-two-three"},
		{"edge hyphens trimmed", "-edgy-", "edgy"},
		{"hyphen space mix", "a - b", "a-b"},

		// Degenerate input
		{"empty", "", ""},
		{"only punctuation", "!?!?", ""},
		{"only whitespace", "   ", ""},
		{"only hyphens", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	in := "Some Repeated Title"
	first := Slugify(in)
	for i := 0; i < 5; i++ {
		if got := Slugify(in); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}
