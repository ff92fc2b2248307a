package services

import (
	"context"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
)

// TagReconciler is the narrow dependency the journal service needs: after any
// journal write it hands over the set of affected tag IDs for recounting.
// Implementations must never fail the caller; reconciliation errors are
// logged and swallowed.
type TagReconciler interface {
	Reconcile(ctx context.Context, tagIDs []string)
}

// TagSvcFacade exposes tag CRUD plus the relationship-maintenance entry
// points (reconciliation and pre-delete cascade removal).
type TagSvcFacade interface {
	TagReconciler

	CreateTag(ctx context.Context, req dto.CreateTagRequest) (*domain.Tag, error)
	UpdateTag(ctx context.Context, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error
	GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	ListTags(ctx context.Context, params dto.ListTagsParams) ([]domain.Tag, error)
	// ReconcileAll recounts every tag and returns how many stored counts
	// were corrected.
	ReconcileAll(ctx context.Context) (int, error)
}

// CategorySvcFacade exposes category CRUD and listing with computed counts.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error)
}
