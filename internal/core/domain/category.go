package domain

// Category groups journals; a journal references at most one category.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"` // hex, e.g. "#1a2b3c"
	Timestamps

	// JournalCount is computed on read over published journals only; it is
	// never persisted.
	JournalCount int `json:"journalCount"`
}
