package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/path?q=1",
		"https://sub.domain.dev/a/b",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"",
		"ftp://example.com",
		"example.com",
		"//example.com",
		"https://",
	}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}

func TestValidateAudioURL(t *testing.T) {
	if err := ValidateAudioURL(""); err != nil {
		t.Errorf("empty audio URL should be valid, got %v", err)
	}
	valid := []string{
		"https://cdn.example.com/ep1.mp3",
		"https://cdn.example.com/sounds/intro.FLAC",
		"http://example.com/a.m4a?token=abc",
	}
	for _, u := range valid {
		if err := ValidateAudioURL(u); err != nil {
			t.Errorf("ValidateAudioURL(%q) = %v, want nil", u, err)
		}
	}
	invalid := []string{
		"https://cdn.example.com/cover.png",
		"https://cdn.example.com/noext",
		"not-a-url.mp3",
	}
	for _, u := range invalid {
		if err := ValidateAudioURL(u); err == nil {
			t.Errorf("ValidateAudioURL(%q) = nil, want error", u)
		}
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"a", "abc", "a-b-c", "top-10-posts", "x1-y2"}
	for _, s := range valid {
		if err := ValidateSlug(s); err != nil {
			t.Errorf("ValidateSlug(%q) = %v, want nil", s, err)
		}
	}
	invalid := []string{"", "Upper-case", "has space", "-leading", "trailing-", "double--hyphen", "under_score"}
	for _, s := range invalid {
		if err := ValidateSlug(s); err == nil {
			t.Errorf("ValidateSlug(%q) = nil, want error", s)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	valid := []string{"", "#fff", "#FFF", "#1a2b3c", "#ABCDEF"}
	for _, c := range valid {
		if err := ValidateHexColor(c); err != nil {
			t.Errorf("ValidateHexColor(%q) = %v, want nil", c, err)
		}
	}
	invalid := []string{"fff", "#ff", "#ffff", "#1a2b3c4d", "#ggg"}
	for _, c := range invalid {
		if err := ValidateHexColor(c); err == nil {
			t.Errorf("ValidateHexColor(%q) = nil, want error", c)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", e, err)
		}
	}
	invalid := []string{"", "no-at.example.com", "a@b", "@example.com", "a@", "a b@c.com"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", e)
		}
	}
}

func TestValidateRequiredString(t *testing.T) {
	if err := ValidateRequiredString("value", "title"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateRequiredString("", "title")
	if err == nil {
		t.Fatal("expected error for empty value")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error %q should mention the field name", err.Error())
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error should wrap apperrors.ErrValidation")
	}
}

func TestValidateTagName(t *testing.T) {
	valid := []string{"Go", "Test Tag 1", "snake_case", "with-hyphen", strings.Repeat("a", 30)}
	for _, n := range valid {
		if err := ValidateTagName(n); err != nil {
			t.Errorf("ValidateTagName(%q) = %v, want nil", n, err)
		}
	}

	// Each failure kind carries its own message, checked in precedence order.
	cases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"required", "", "required"},
		{"blank after trim", "   ", "blank"},
		{"too long", strings.Repeat("a", 31), "30"},
		{"bad charset", "tag/name", "letters"},
		{"blank beats length", strings.Repeat(" ", 40), "blank"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName(tt.input)
			if err == nil {
				t.Fatalf("ValidateTagName(%q) = nil, want error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}
