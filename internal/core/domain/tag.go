package domain

// Tag is a taxonomy entity referenced by journals.
//
// JournalCount is denormalized: it always converges to the number of journals
// (any status) whose tag list contains this tag, maintained by the tag
// reconciliation service after each journal write.
type Tag struct {
	TagID        string `json:"tagID"`
	Name         string `json:"name"` // unique, max 30 chars
	Slug         string `json:"slug"` // derived from name, read-only
	JournalCount int    `json:"journalCount"`
	Timestamps
}
