package services

import (
	"context"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
)

// JournalListResult is the service-level outcome of a journal listing: the
// page of docs plus the taxonomy the caller can filter by.
type JournalListResult struct {
	Journals   []domain.Journal
	Total      int
	Page       int
	Limit      int
	Categories []domain.Category
	Tags       []domain.Tag
}

// JournalSvcFacade exposes the journal write workflow (slug/excerpt/SEO
// derivation, publishing transitions, tag-count reconciliation) and reads.
type JournalSvcFacade interface {
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error)
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error)
	DeleteJournal(ctx context.Context, journalID string) error
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	GetJournalBySlug(ctx context.Context, slug string) (*domain.Journal, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*JournalListResult, error)
}
