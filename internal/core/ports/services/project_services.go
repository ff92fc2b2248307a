package services

import (
	"context"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
)

// ProjectSvcFacade exposes portfolio project CRUD and reads.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
	GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}
