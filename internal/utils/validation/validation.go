// Package validation provides the field-level predicates shared by the DTO
// layer and the domain services. Every validator returns nil when the value is
// acceptable and a descriptive error otherwise; none of them panic.
package validation

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
)

const maxTagNameLength = 30

var (
	slugRe     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tagNameRe  = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
)

// audioExtensions are the recognized audio file suffixes for AudioURL fields.
var audioExtensions = map[string]struct{}{
	".mp3": {}, ".wav": {}, ".ogg": {}, ".m4a": {}, ".aac": {}, ".flac": {},
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

// ValidateURL accepts only absolute http/https URLs.
func ValidateURL(raw string) error {
	if raw == "" {
		return validationErr("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return validationErr("invalid URL format")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationErr("URL must be absolute http or https")
	}
	return nil
}

// ValidateAudioURL validates an optional audio URL. Empty is valid; a
// non-empty value must be a valid URL with a recognized audio extension.
func ValidateAudioURL(raw string) error {
	if raw == "" {
		return nil
	}
	if err := ValidateURL(raw); err != nil {
		return err
	}
	u, _ := url.Parse(raw)
	ext := strings.ToLower(path.Ext(u.Path))
	if _, ok := audioExtensions[ext]; !ok {
		return validationErr("URL must point to an audio file (mp3, wav, ogg, m4a, aac, flac)")
	}
	return nil
}

// ValidateSlug checks the canonical slug shape: lowercase alphanumeric
// segments joined by single hyphens, no leading or trailing hyphen.
func ValidateSlug(slug string) error {
	if slug == "" {
		return validationErr("slug is required")
	}
	if !slugRe.MatchString(slug) {
		return validationErr("slug must contain only lowercase letters, numbers and single hyphens")
	}
	return nil
}

// ValidateHexColor validates an optional hex color. Empty is valid; otherwise
// the value must be "#" followed by 3 or 6 hex digits.
func ValidateHexColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRe.MatchString(color) {
		return validationErr("color must be a 3- or 6-digit hex value with a leading #")
	}
	return nil
}

// ValidateEmail checks the standard single-@ email shape.
func ValidateEmail(email string) error {
	if email == "" {
		return validationErr("email is required")
	}
	if !emailRe.MatchString(email) {
		return validationErr("invalid email address")
	}
	return nil
}

// ValidateRequiredString rejects empty strings; the error names the field.
func ValidateRequiredString(value, fieldName string) error {
	if value == "" {
		return validationErr("%s is required", fieldName)
	}
	return nil
}

// ValidateTagName enforces the tag naming rules, reporting the first failing
// check: required, non-blank after trimming, length cap, then charset.
func ValidateTagName(name string) error {
	if name == "" {
		return validationErr("tag name is required")
	}
	if strings.TrimSpace(name) == "" {
		return validationErr("tag name cannot be blank")
	}
	if utf8.RuneCountInString(name) > maxTagNameLength {
		return validationErr("tag name cannot exceed %d characters", maxTagNameLength)
	}
	if !tagNameRe.MatchString(name) {
		return validationErr("tag name may only contain letters, numbers, spaces, hyphens and underscores")
	}
	return nil
}
