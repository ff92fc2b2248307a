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

type projectService struct {
	projectRepo portsrepo.ProjectRepository
}

// NewProjectService creates the portfolio project service.
func NewProjectService(projectRepo portsrepo.ProjectRepository) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	if err := validation.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, err
	}
	if err := validateOptionalURL(req.LiveURL); err != nil {
		return nil, err
	}
	if err := validateOptionalURL(req.RepoURL); err != nil {
		return nil, err
	}
	slug := slugify.Slugify(req.Title)
	if slug == "" {
		return nil, fmt.Errorf("%w: project title yields an empty slug", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:      uuid.NewString(),
		Title:          req.Title,
		Slug:           slug,
		Summary:        req.Summary,
		Description:    req.Description,
		Intro:          req.Intro,
		Implementation: req.Implementation,
		LiveURL:        req.LiveURL,
		RepoURL:        req.RepoURL,
		SortOrder:      req.SortOrder,
		Featured:       req.Featured,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project for update: %w", err)
	}

	if req.Title != nil && *req.Title != project.Title {
		if err := validation.ValidateRequiredString(*req.Title, "title"); err != nil {
			return nil, err
		}
		slug := slugify.Slugify(*req.Title)
		if slug == "" {
			return nil, fmt.Errorf("%w: project title yields an empty slug", apperrors.ErrValidation)
		}
		project.Title = *req.Title
		project.Slug = slug
	}
	if req.Summary != nil {
		project.Summary = *req.Summary
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Intro != nil {
		project.Intro = req.Intro
	}
	if req.Implementation != nil {
		project.Implementation = req.Implementation
	}
	applySlot(&project.Image1, req.Image1)
	applySlot(&project.Image2, req.Image2)
	applySlot(&project.Image3, req.Image3)
	applySlot(&project.Image4, req.Image4)
	applySlot(&project.Image5, req.Image5)
	applySlot(&project.Image6, req.Image6)
	applySlot(&project.Image7, req.Image7)
	applySlot(&project.Image8, req.Image8)
	if req.LiveURL != nil {
		if err := validateOptionalURL(*req.LiveURL); err != nil {
			return nil, err
		}
		project.LiveURL = *req.LiveURL
	}
	if req.RepoURL != nil {
		if err := validateOptionalURL(*req.RepoURL); err != nil {
			return nil, err
		}
		project.RepoURL = *req.RepoURL
	}
	if req.SortOrder != nil {
		project.SortOrder = *req.SortOrder
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	project.UpdatedAt = time.Now().UTC()
	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return fmt.Errorf("failed to load project for delete: %w", err)
	}
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *projectService) GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get project by slug: %w", err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// applySlot overwrites one image slot when the request provided it.
func applySlot(slot **string, val *string) {
	if val != nil {
		*slot = val
	}
}

func validateOptionalURL(raw string) error {
	if raw == "" {
		return nil
	}
	return validation.ValidateURL(raw)
}
