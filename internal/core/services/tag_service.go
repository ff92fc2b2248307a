package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/slugify"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/validation"
)

// cascadePageSize bounds how many referencing journals are loaded per page
// while cascading a tag deletion.
const cascadePageSize = 50

type tagService struct {
	tagRepo     portsrepo.TagRepository
	journalRepo portsrepo.JournalRepository
}

// NewTagService creates the tag service, which owns tag CRUD and the
// journal-count reconciliation that keeps the denormalized counts honest.
func NewTagService(tagRepo portsrepo.TagRepository, journalRepo portsrepo.JournalRepository) portssvc.TagSvcFacade {
	return &tagService{tagRepo: tagRepo, journalRepo: journalRepo}
}

func (s *tagService) CreateTag(ctx context.Context, req dto.CreateTagRequest) (*domain.Tag, error) {
	if err := validation.ValidateTagName(req.Name); err != nil {
		return nil, err
	}
	slug := slugify.Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("%w: tag name yields an empty slug", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	tag := domain.Tag{
		TagID: uuid.NewString(),
		Name:  req.Name,
		Slug:  slug,
		// A new tag cannot be referenced yet; the count starts at zero
		// unconditionally.
		JournalCount: 0,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag for update: %w", err)
	}
	if err := validation.ValidateTagName(req.Name); err != nil {
		return nil, err
	}
	slug := slugify.Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("%w: tag name yields an empty slug", apperrors.ErrValidation)
	}

	tag.Name = req.Name
	tag.Slug = slug
	tag.UpdatedAt = time.Now().UTC()
	if err := s.tagRepo.UpdateTag(ctx, *tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	// Every tag write re-verifies the stored count against a fresh query;
	// failures here never surface to the caller.
	s.Reconcile(ctx, []string{tagID})

	return s.tagRepo.FindTagByID(ctx, tagID)
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string) error {
	if _, err := s.tagRepo.FindTagByID(ctx, tagID); err != nil {
		return fmt.Errorf("failed to load tag for delete: %w", err)
	}

	// Cascade-clean before the delete: strip this tag's ID from every journal
	// that references it. Failures are logged and swallowed so the delete
	// itself always proceeds.
	s.cascadeRemove(ctx, tagID)

	if err := s.tagRepo.DeleteTag(ctx, tagID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (s *tagService) GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context, params dto.ListTagsParams) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx, portsrepo.ListTagsFilter{
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		HideEmpty: params.HideEmpty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// Reconcile recomputes the stored journal count for each given tag from a
// fresh authoritative count query and persists it only when it differs.
// Recounting (rather than applying deltas) makes repeated or out-of-order
// invocations converge to the same value. Errors are logged and swallowed:
// the journal or tag write that triggered reconciliation must never fail
// because a count could not be refreshed.
func (s *tagService) Reconcile(ctx context.Context, tagIDs []string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	seen := make(map[string]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, dup := seen[tagID]; dup || tagID == "" {
			continue
		}
		seen[tagID] = struct{}{}

		if _, err := s.reconcileOne(ctx, tagID); err != nil {
			logger.Error("Tag count reconciliation failed",
				slog.String("tag_id", tagID), slog.String("error", err.Error()))
		}
	}
}

// reconcileOne refreshes a single tag's count, reporting whether a correction
// was written. A tag that no longer exists is not an error; it simply has no
// count to maintain.
func (s *tagService) reconcileOne(ctx context.Context, tagID string) (bool, error) {
	count, err := s.journalRepo.CountJournalsWithTag(ctx, tagID)
	if err != nil {
		return false, fmt.Errorf("count query failed: %w", err)
	}
	tag, err := s.tagRepo.FindTagByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("tag lookup failed: %w", err)
	}
	if tag.JournalCount == count {
		return false, nil
	}
	if err := s.tagRepo.UpdateJournalCount(ctx, tagID, count); err != nil {
		return false, fmt.Errorf("count update failed: %w", err)
	}
	return true, nil
}

// ReconcileAll recounts every tag, returning how many stored counts were
// corrected. Individual failures are logged and skipped so one broken tag
// cannot stall a full reconciliation pass.
func (s *tagService) ReconcileAll(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	tagIDs, err := s.tagRepo.ListAllTagIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tags for reconciliation: %w", err)
	}

	corrected := 0
	for _, tagID := range tagIDs {
		changed, err := s.reconcileOne(ctx, tagID)
		if err != nil {
			logger.Error("Tag count reconciliation failed",
				slog.String("tag_id", tagID), slog.String("error", err.Error()))
			continue
		}
		if changed {
			corrected++
		}
	}
	logger.Info("Full tag reconciliation completed",
		slog.Int("tags", len(tagIDs)), slog.Int("corrected", corrected))
	return corrected, nil
}

// cascadeRemove pages through the journals referencing tagID and removes the
// reference from each, one update per journal, preserving the order of the
// remaining tags. Page size is bounded; errors are logged and abort the loop
// without surfacing (the delete that follows is not blocked).
func (s *tagService) cascadeRemove(ctx context.Context, tagID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for {
		journalIDs, err := s.journalRepo.FindJournalIDsWithTag(ctx, tagID, cascadePageSize)
		if err != nil {
			logger.Error("Cascade removal query failed",
				slog.String("tag_id", tagID), slog.String("error", err.Error()))
			return
		}
		if len(journalIDs) == 0 {
			return
		}
		for _, journalID := range journalIDs {
			if err := s.journalRepo.RemoveTagFromJournal(ctx, journalID, tagID); err != nil {
				logger.Error("Cascade removal update failed",
					slog.String("tag_id", tagID),
					slog.String("journal_id", journalID),
					slog.String("error", err.Error()))
				return
			}
		}
		// A short page means the final page was drained.
		if len(journalIDs) < cascadePageSize {
			return
		}
	}
}
