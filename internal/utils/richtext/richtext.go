// Package richtext handles the structured editor content stored on journals:
// shape validation, plain-text extraction and excerpt derivation.
package richtext

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
)

// MaxExcerptLength caps derived excerpts.
const MaxExcerptLength = 300

// node is one block or inline element of the editor document. Leaf nodes
// carry text; container nodes carry children.
type node struct {
	Text     *string `json:"text"`
	Children []node  `json:"children"`
}

// Validate checks that raw is a non-empty JSON array of content nodes, the
// only shape the editor produces. It never panics on malformed input.
func Validate(raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}
	var nodes []node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return fmt.Errorf("%w: content must be an array of rich text nodes", apperrors.ErrValidation)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%w: content cannot be empty", apperrors.ErrValidation)
	}
	return nil
}

// ExtractText flattens the document to plain text, joining block-level nodes
// with single spaces. Malformed input yields "".
func ExtractText(raw json.RawMessage) string {
	var nodes []node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return ""
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(n, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n node, b *strings.Builder) {
	if n.Text != nil {
		b.WriteString(*n.Text)
		b.WriteByte(' ')
	}
	for _, child := range n.Children {
		collectText(child, b)
	}
}

// Excerpt derives a journal excerpt from its content, capped at
// MaxExcerptLength runes with a trailing ellipsis when truncated.
func Excerpt(raw json.RawMessage) string {
	text := ExtractText(raw)
	if utf8.RuneCountInString(text) <= MaxExcerptLength {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimRight(string(runes[:MaxExcerptLength-3]), " ")
	return cut + "..."
}
