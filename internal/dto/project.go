package dto

import (
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// CreateProjectRequest defines the payload for creating a portfolio project.
type CreateProjectRequest struct {
	Title          string  `json:"title" binding:"required"`
	Summary        string  `json:"summary"`
	Description    string  `json:"description"`
	Intro          *string `json:"intro"`
	Implementation *string `json:"implementation"`
	LiveURL        string  `json:"liveUrl"`
	RepoURL        string  `json:"repoUrl"`
	SortOrder      int     `json:"sortOrder"`
	Featured       bool    `json:"featured"`
}

// UpdateProjectRequest defines the payload for updating a portfolio project.
type UpdateProjectRequest struct {
	Title          *string `json:"title"`
	Summary        *string `json:"summary"`
	Description    *string `json:"description"`
	Intro          *string `json:"intro"`
	Implementation *string `json:"implementation"`
	Image1         *string `json:"image1"`
	Image2         *string `json:"image2"`
	Image3         *string `json:"image3"`
	Image4         *string `json:"image4"`
	Image5         *string `json:"image5"`
	Image6         *string `json:"image6"`
	Image7         *string `json:"image7"`
	Image8         *string `json:"image8"`
	LiveURL        *string `json:"liveUrl"`
	RepoURL        *string `json:"repoUrl"`
	SortOrder      *int    `json:"sortOrder"`
	Featured       *bool   `json:"featured"`
}

// ProjectResponse is the API representation of a portfolio project. The image
// slots are flattened into an ordered list of the populated entries.
type ProjectResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Summary        string    `json:"summary"`
	Description    string    `json:"description"`
	Intro          string    `json:"intro"`
	Implementation string    `json:"implementation"`
	Images         []string  `json:"images"`
	LiveURL        string    `json:"liveUrl,omitempty"`
	RepoURL        string    `json:"repoUrl,omitempty"`
	SortOrder      int       `json:"sortOrder"`
	Featured       bool      `json:"featured"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToProjectResponse converts a domain project to its API form.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	images := []string{}
	for _, slot := range []*string{p.Image1, p.Image2, p.Image3, p.Image4, p.Image5, p.Image6, p.Image7, p.Image8} {
		if slot != nil && *slot != "" {
			images = append(images, *slot)
		}
	}
	return ProjectResponse{
		ID:             p.ProjectID,
		Title:          p.Title,
		Slug:           p.Slug,
		Summary:        p.Summary,
		Description:    p.Description,
		Intro:          deref(p.Intro),
		Implementation: deref(p.Implementation),
		Images:         images,
		LiveURL:        p.LiveURL,
		RepoURL:        p.RepoURL,
		SortOrder:      p.SortOrder,
		Featured:       p.Featured,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProjectListResponse converts a slice of domain projects.
func ToProjectListResponse(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
