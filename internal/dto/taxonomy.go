package dto

import (
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// CreateTagRequest defines the payload for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=30"`
}

// UpdateTagRequest defines the payload for renaming a tag.
type UpdateTagRequest struct {
	Name string `json:"name" binding:"required,max=30"`
}

// ListTagsParams defines the query parameters of GET /api/tags.
type ListTagsParams struct {
	SortBy    string `form:"sortBy,default=name" binding:"omitempty,oneof=name journalCount createdAt"`
	SortOrder string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
	HideEmpty bool   `form:"hideEmpty"`
}

// TagResponse is the API representation of a tag. JournalCount counts
// published journals only, computed at read time.
type TagResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	JournalCount int       `json:"journalCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToTagResponse converts a domain tag to its API form.
func ToTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{
		ID:           t.TagID,
		Name:         t.Name,
		Slug:         t.Slug,
		JournalCount: t.JournalCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToTagListResponse converts a slice of domain tags.
func ToTagListResponse(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i := range tags {
		out[i] = ToTagResponse(&tags[i])
	}
	return out
}

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateCategoryRequest defines the payload for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// ListCategoriesParams defines the query parameters of GET /api/categories.
type ListCategoriesParams struct {
	SortBy    string `form:"sortBy,default=name" binding:"omitempty,oneof=name journalCount createdAt"`
	SortOrder string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Color        string    `json:"color"`
	JournalCount int       `json:"journalCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain category to its API form.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.CategoryID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Color:        c.Color,
		JournalCount: c.JournalCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCategoryListResponse converts a slice of domain categories.
func ToCategoryListResponse(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}
