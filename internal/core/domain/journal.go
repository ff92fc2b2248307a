package domain

import (
	"encoding/json"
	"time"
)

// JournalStatus indicates the publishing state of a journal entry.
type JournalStatus string

const (
	JournalStatusDraft     JournalStatus = "draft"
	JournalStatusPublished JournalStatus = "published"
)

// IsValid reports whether the status is one of the known states.
func (s JournalStatus) IsValid() bool {
	return s == JournalStatusDraft || s == JournalStatusPublished
}

// SEO holds the search metadata rendered into the page head.
// Both fields are auto-populated from title/excerpt when left empty.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Journal represents a single blog entry with its publishing workflow and taxonomy.
//
// Invariant: PublishedAt is non-nil iff Status == JournalStatusPublished.
// Slug is derived from Title and only changes when the title changes.
type Journal struct {
	JournalID   string          `json:"journalID"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Content     json.RawMessage `json:"content"` // rich structured content, stored as JSONB
	Excerpt     string          `json:"excerpt"` // derived from content when absent, capped at 300 chars
	Status      JournalStatus   `json:"status"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	CategoryID  *string         `json:"categoryID,omitempty"`
	TagIDs      []string        `json:"tagIDs"` // ordered tag references
	CoverImage  string          `json:"coverImage,omitempty"`
	AudioURL    string          `json:"audioUrl,omitempty"`
	SEO         SEO             `json:"seo"`
	Timestamps
}
