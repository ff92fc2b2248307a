package repositories

import (
	"context"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// ListJournalsFilter narrows and orders a journal listing. SortBy/SortOrder
// must already be validated against the allowed columns by the caller.
type ListJournalsFilter struct {
	CategorySlug string
	TagSlugs     []string
	Status       *domain.JournalStatus
	Search       string
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// JournalRepository persists journal entries and their tag references.
type JournalRepository interface {
	SaveJournal(ctx context.Context, journal domain.Journal) error
	UpdateJournal(ctx context.Context, journal domain.Journal) error
	DeleteJournal(ctx context.Context, journalID string) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	FindJournalBySlug(ctx context.Context, slug string) (*domain.Journal, error)
	// ListJournals returns one page of matching journals plus the total match count.
	ListJournals(ctx context.Context, filter ListJournalsFilter) ([]domain.Journal, int, error)
	SlugExists(ctx context.Context, slug, excludeJournalID string) (bool, error)

	// CountJournalsWithTag returns the authoritative number of journals (any
	// status) whose tag list contains tagID. Tag count reconciliation relies
	// on this being a fresh count, never a cached or incremental value.
	CountJournalsWithTag(ctx context.Context, tagID string) (int, error)
	// FindJournalIDsWithTag returns up to limit IDs of journals referencing
	// tagID, for paging through a cascade removal.
	FindJournalIDsWithTag(ctx context.Context, tagID string, limit int) ([]string, error)
	// RemoveTagFromJournal deletes tagID from one journal's tag list,
	// preserving the relative order of the remaining tags.
	RemoveTagFromJournal(ctx context.Context, journalID, tagID string) error
}
