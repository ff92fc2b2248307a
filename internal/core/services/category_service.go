package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/slugify"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/validation"
)

type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates the category service. Category journal counts
// are never stored; the repository computes them at read time.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := validation.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateHexColor(req.Color); err != nil {
		return nil, err
	}
	slug := slugify.Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("%w: category name yields an empty slug", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category for update: %w", err)
	}

	if req.Name != nil && *req.Name != category.Name {
		if err := validation.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		slug := slugify.Slugify(*req.Name)
		if slug == "" {
			return nil, fmt.Errorf("%w: category name yields an empty slug", apperrors.ErrValidation)
		}
		category.Name = *req.Name
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		if err := validation.ValidateHexColor(*req.Color); err != nil {
			return nil, err
		}
		category.Color = *req.Color
	}

	category.UpdatedAt = time.Now().UTC()
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to load category for delete: %w", err)
	}
	// Journals referencing the category keep existing; the database clears
	// the reference on delete.
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, portsrepo.ListCategoriesFilter{
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
