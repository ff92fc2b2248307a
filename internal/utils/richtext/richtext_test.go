package richtext

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doc(paragraphs ...string) json.RawMessage {
	type leaf struct {
		Text string `json:"text"`
	}
	type block struct {
		Type     string `json:"type"`
		Children []leaf `json:"children"`
	}
	blocks := make([]block, len(paragraphs))
	for i, p := range paragraphs {
		blocks[i] = block{Type: "paragraph", Children: []leaf{{Text: p}}}
	}
	raw, _ := json.Marshal(blocks)
	return raw
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(doc("hello")))
	assert.Error(t, Validate(nil))
	assert.Error(t, Validate(json.RawMessage(`[]`)))
	assert.Error(t, Validate(json.RawMessage(`{"not":"an array"}`)))
	assert.Error(t, Validate(json.RawMessage(`"plain string"`)))
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "first block second block", ExtractText(doc("first block", "second block")))
	assert.Equal(t, "", ExtractText(json.RawMessage(`not json`)))
	assert.Equal(t, "", ExtractText(doc()))

	// Nested containers are walked depth-first.
	nested := json.RawMessage(`[{"children":[{"children":[{"text":"deep"}]},{"text":"wide"}]}]`)
	assert.Equal(t, "deep wide", ExtractText(nested))
}

func TestExcerpt(t *testing.T) {
	t.Run("short content untouched", func(t *testing.T) {
		assert.Equal(t, "short text", Excerpt(doc("short text")))
	})

	t.Run("long content truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("word ", 120)
		got := Excerpt(doc(long))
		assert.LessOrEqual(t, len([]rune(got)), MaxExcerptLength)
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}
