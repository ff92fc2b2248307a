package repositories

import (
	"context"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
)

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, projectID string) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	FindProjectBySlug(ctx context.Context, slug string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	// ListProjectsPage returns projects in stable order for batch iteration
	// (used by the backfill script, page size 50).
	ListProjectsPage(ctx context.Context, limit, offset int) ([]domain.Project, error)
}
