package dto

import (
	"encoding/json"
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// SEOInput carries optional SEO overrides on journal writes.
type SEOInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateJournalRequest defines the payload for creating a journal entry.
type CreateJournalRequest struct {
	Title      string          `json:"title" binding:"required"`
	Content    json.RawMessage `json:"content" binding:"required"`
	Excerpt    string          `json:"excerpt"`
	Status     string          `json:"status" binding:"omitempty,oneof=draft published"`
	CategoryID *string         `json:"categoryID"`
	TagIDs     []string        `json:"tagIDs"`
	CoverImage string          `json:"coverImage"`
	AudioURL   string          `json:"audioUrl"`
	SEO        *SEOInput       `json:"seo"`
}

// UpdateJournalRequest defines the payload for updating a journal entry.
// Pointer fields distinguish "omitted" from "set to zero value".
type UpdateJournalRequest struct {
	Title      *string         `json:"title"`
	Content    json.RawMessage `json:"content"`
	Excerpt    *string         `json:"excerpt"`
	Status     *string         `json:"status" binding:"omitempty,oneof=draft published"`
	CategoryID *string         `json:"categoryID"`
	TagIDs     *[]string       `json:"tagIDs"`
	CoverImage *string         `json:"coverImage"`
	AudioURL   *string         `json:"audioUrl"`
	SEO        *SEOInput       `json:"seo"`
}

// ListJournalsParams defines the query parameters of GET /api/journals.
type ListJournalsParams struct {
	Page      int      `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int      `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Category  string   `form:"category"`
	Tags      []string `form:"tags"`
	Status    string   `form:"status" binding:"omitempty,oneof=draft published"`
	Search    string   `form:"search"`
	SortBy    string   `form:"sortBy,default=createdAt" binding:"omitempty,oneof=createdAt updatedAt publishedAt title"`
	SortOrder string   `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// JournalResponse is the API representation of a journal entry.
type JournalResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Content     json.RawMessage `json:"content,omitempty"`
	Excerpt     string          `json:"excerpt"`
	Status      string          `json:"status"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	CategoryID  *string         `json:"categoryID,omitempty"`
	TagIDs      []string        `json:"tagIDs"`
	CoverImage  string          `json:"coverImage,omitempty"`
	AudioURL    string          `json:"audioUrl,omitempty"`
	SEO         SEOInput        `json:"seo"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// JournalListResponse is the payload of GET /api/journals: the page of docs
// plus the taxonomy available for filtering.
type JournalListResponse struct {
	Docs       []JournalResponse  `json:"docs"`
	Pagination Pagination         `json:"pagination"`
	Categories []CategoryResponse `json:"categories"`
	Tags       []TagResponse      `json:"tags"`
}

// ToJournalResponse converts a domain journal to its API form. Content is
// included only when withContent is set (list responses stay lean).
func ToJournalResponse(j *domain.Journal, withContent bool) JournalResponse {
	resp := JournalResponse{
		ID:          j.JournalID,
		Title:       j.Title,
		Slug:        j.Slug,
		Excerpt:     j.Excerpt,
		Status:      string(j.Status),
		PublishedAt: j.PublishedAt,
		CategoryID:  j.CategoryID,
		TagIDs:      j.TagIDs,
		CoverImage:  j.CoverImage,
		AudioURL:    j.AudioURL,
		SEO:         SEOInput{Title: j.SEO.Title, Description: j.SEO.Description},
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	if resp.TagIDs == nil {
		resp.TagIDs = []string{}
	}
	if withContent {
		resp.Content = j.Content
	}
	return resp
}
