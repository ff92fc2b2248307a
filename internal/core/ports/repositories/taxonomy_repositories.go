package repositories

import (
	"context"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// ListTagsFilter orders and narrows a tag listing.
type ListTagsFilter struct {
	SortBy    string
	SortOrder string
	HideEmpty bool
}

// TagRepository persists tags and their denormalized journal counts.
type TagRepository interface {
	SaveTag(ctx context.Context, tag domain.Tag) error
	UpdateTag(ctx context.Context, tag domain.Tag) error
	// UpdateJournalCount persists a reconciled count for one tag.
	UpdateJournalCount(ctx context.Context, tagID string, count int) error
	DeleteTag(ctx context.Context, tagID string) error
	FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error)
	// ListTags returns tags with JournalCount computed over published
	// journals only (the read-API counting rule).
	ListTags(ctx context.Context, filter ListTagsFilter) ([]domain.Tag, error)
	// ListAllTagIDs supports full recounts.
	ListAllTagIDs(ctx context.Context) ([]string, error)
}

// ListCategoriesFilter orders a category listing.
type ListCategoriesFilter struct {
	SortBy    string
	SortOrder string
}

// CategoryRepository persists categories. Category journal counts are always
// computed on read, never stored.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// ListCategories returns categories with JournalCount computed over
	// published journals only.
	ListCategories(ctx context.Context, filter ListCategoriesFilter) ([]domain.Category, error)
}
