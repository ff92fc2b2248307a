package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/richtext"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/slugify"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/validation"
)

type journalService struct {
	journalRepo  portsrepo.JournalRepository
	tagRepo      portsrepo.TagRepository
	categoryRepo portsrepo.CategoryRepository
	reconciler   portssvc.TagReconciler
}

// NewJournalService creates the journal service. Every journal write ends by
// handing the affected tag IDs to the reconciler.
func NewJournalService(
	journalRepo portsrepo.JournalRepository,
	tagRepo portsrepo.TagRepository,
	categoryRepo portsrepo.CategoryRepository,
	reconciler portssvc.TagReconciler,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		reconciler:   reconciler,
	}
}

func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	if err := validation.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, err
	}
	if err := richtext.Validate(req.Content); err != nil {
		return nil, err
	}
	if err := validation.ValidateAudioURL(req.AudioURL); err != nil {
		return nil, err
	}
	if req.CoverImage != "" {
		if err := validation.ValidateURL(req.CoverImage); err != nil {
			return nil, err
		}
	}

	slug, err := s.deriveSlug(ctx, req.Title, "")
	if err != nil {
		return nil, err
	}

	excerpt, err := resolveExcerpt(req.Excerpt, req.Content)
	if err != nil {
		return nil, err
	}

	status := domain.JournalStatusDraft
	if req.Status != "" {
		status = domain.JournalStatus(req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, req.Status)
		}
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkTags(ctx, req.TagIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID:  uuid.NewString(),
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		Excerpt:    excerpt,
		Status:     status,
		CategoryID: normalizeCategoryID(req.CategoryID),
		TagIDs:     req.TagIDs,
		CoverImage: req.CoverImage,
		AudioURL:   req.AudioURL,
		SEO:        resolveSEO(req.SEO, req.Title, excerpt),
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	// publishedAt is set exactly when the entry is published.
	if status == domain.JournalStatusPublished {
		journal.PublishedAt = &now
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	s.reconciler.Reconcile(ctx, journal.TagIDs)
	return &journal, nil
}

func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal for update: %w", err)
	}
	oldTagIDs := journal.TagIDs
	contentChanged := false

	if req.Title != nil && *req.Title != journal.Title {
		if err := validation.ValidateRequiredString(*req.Title, "title"); err != nil {
			return nil, err
		}
		// The slug is re-derived only when the title actually changes, so
		// published URLs stay stable across content-only edits.
		slug, err := s.deriveSlug(ctx, *req.Title, journalID)
		if err != nil {
			return nil, err
		}
		journal.Title = *req.Title
		journal.Slug = slug
	}

	if req.Content != nil {
		if err := richtext.Validate(req.Content); err != nil {
			return nil, err
		}
		journal.Content = req.Content
		contentChanged = true
	}

	switch {
	case req.Excerpt != nil:
		if utf8.RuneCountInString(*req.Excerpt) > richtext.MaxExcerptLength {
			return nil, fmt.Errorf("%w: excerpt exceeds %d characters", apperrors.ErrValidation, richtext.MaxExcerptLength)
		}
		journal.Excerpt = *req.Excerpt
	case contentChanged:
		journal.Excerpt = richtext.Excerpt(journal.Content)
	}

	if req.Status != nil {
		next := domain.JournalStatus(*req.Status)
		if !next.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, *req.Status)
		}
		if next != journal.Status {
			if next == domain.JournalStatusPublished {
				now := time.Now().UTC()
				journal.PublishedAt = &now
			} else {
				journal.PublishedAt = nil
			}
			journal.Status = next
		}
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		journal.CategoryID = normalizeCategoryID(req.CategoryID)
	}

	if req.TagIDs != nil {
		if err := s.checkTags(ctx, *req.TagIDs); err != nil {
			return nil, err
		}
		journal.TagIDs = *req.TagIDs
	}

	if req.CoverImage != nil {
		if *req.CoverImage != "" {
			if err := validation.ValidateURL(*req.CoverImage); err != nil {
				return nil, err
			}
		}
		journal.CoverImage = *req.CoverImage
	}
	if req.AudioURL != nil {
		if err := validation.ValidateAudioURL(*req.AudioURL); err != nil {
			return nil, err
		}
		journal.AudioURL = *req.AudioURL
	}
	if req.SEO != nil {
		journal.SEO = resolveSEO(req.SEO, journal.Title, journal.Excerpt)
	}

	journal.UpdatedAt = time.Now().UTC()
	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}

	// Both the pre-update and post-update tag sets are reconciled; tags that
	// were removed need their counts lowered just as added ones need raising.
	s.reconciler.Reconcile(ctx, unionTagIDs(oldTagIDs, journal.TagIDs))
	return journal, nil
}

func (s *journalService) DeleteJournal(ctx context.Context, journalID string) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to load journal for delete: %w", err)
	}
	if err := s.journalRepo.DeleteJournal(ctx, journalID); err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	s.reconciler.Reconcile(ctx, journal.TagIDs)
	return nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal: %w", err)
	}
	return journal, nil
}

func (s *journalService) GetJournalBySlug(ctx context.Context, slug string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal by slug: %w", err)
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*portssvc.JournalListResult, error) {
	filter := portsrepo.ListJournalsFilter{
		CategorySlug: params.Category,
		TagSlugs:     params.Tags,
		Search:       params.Search,
		SortBy:       params.SortBy,
		SortOrder:    params.SortOrder,
		Limit:        params.Limit,
		Offset:       (params.Page - 1) * params.Limit,
	}
	if params.Status != "" {
		status := domain.JournalStatus(params.Status)
		filter.Status = &status
	}

	journals, total, err := s.journalRepo.ListJournals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		journals = []domain.Journal{}
	}

	categories, err := s.categoryRepo.ListCategories(ctx, portsrepo.ListCategoriesFilter{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for journal listing: %w", err)
	}
	tags, err := s.tagRepo.ListTags(ctx, portsrepo.ListTagsFilter{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for journal listing: %w", err)
	}

	return &portssvc.JournalListResult{
		Journals:   journals,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		Categories: categories,
		Tags:       tags,
	}, nil
}

// deriveSlug turns a title into a unique slug, excluding excludeJournalID
// from the uniqueness check on updates.
func (s *journalService) deriveSlug(ctx context.Context, title, excludeJournalID string) (string, error) {
	slug := slugify.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("%w: title yields an empty slug", apperrors.ErrValidation)
	}
	exists, err := s.journalRepo.SlugExists(ctx, slug, excludeJournalID)
	if err != nil {
		return "", fmt.Errorf("slug uniqueness check failed: %w", err)
	}
	if exists {
		return "", fmt.Errorf("%w: slug %q is already in use", apperrors.ErrDuplicate, slug)
	}
	return slug, nil
}

func (s *journalService) checkCategory(ctx context.Context, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %q does not exist", apperrors.ErrValidation, *categoryID)
		}
		return fmt.Errorf("category lookup failed: %w", err)
	}
	return nil
}

func (s *journalService) checkTags(ctx context.Context, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tags, err := s.tagRepo.FindTagsByIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("tag lookup failed: %w", err)
	}
	if len(tags) != len(uniqueIDs(tagIDs)) {
		return fmt.Errorf("%w: one or more tag IDs do not exist", apperrors.ErrValidation)
	}
	return nil
}

// resolveExcerpt prefers an explicit excerpt and otherwise derives one from
// the rich-text content.
func resolveExcerpt(explicit string, content []byte) (string, error) {
	if explicit != "" {
		if utf8.RuneCountInString(explicit) > richtext.MaxExcerptLength {
			return "", fmt.Errorf("%w: excerpt exceeds %d characters", apperrors.ErrValidation, richtext.MaxExcerptLength)
		}
		return explicit, nil
	}
	return richtext.Excerpt(content), nil
}

// resolveSEO fills missing SEO fields from the title and excerpt.
func resolveSEO(in *dto.SEOInput, title, excerpt string) domain.SEO {
	seo := domain.SEO{Title: title, Description: excerpt}
	if in != nil {
		if in.Title != "" {
			seo.Title = in.Title
		}
		if in.Description != "" {
			seo.Description = in.Description
		}
	}
	return seo
}

func normalizeCategoryID(categoryID *string) *string {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	return categoryID
}

func unionTagIDs(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, id := range a {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range b {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
