package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
)

const projectColumns = `project_id, title, slug, summary, description, intro, implementation,
	image1, image2, image3, image4, image5, image6, image7, image8,
	live_url, repo_url, sort_order, featured, created_at, updated_at`

type PgxProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgxProjectRepository creates a new repository for portfolio projects.
func NewPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepository {
	return &PgxProjectRepository{pool: pool}
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (project_id, title, slug, summary, description, intro, implementation,
			image1, image2, image3, image4, image5, image6, image7, image8,
			live_url, repo_url, sort_order, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.pool.Exec(ctx, query, projectArgs(project)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: project slug %s", apperrors.ErrDuplicate, project.Slug)
		}
		return fmt.Errorf("failed to insert project %s: %w", project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects SET
			title = $2, slug = $3, summary = $4, description = $5, intro = $6, implementation = $7,
			image1 = $8, image2 = $9, image3 = $10, image4 = $11,
			image5 = $12, image6 = $13, image7 = $14, image8 = $15,
			live_url = $16, repo_url = $17, sort_order = $18, featured = $19, updated_at = $20
		WHERE project_id = $1;
	`
	args := []any{
		project.ProjectID, project.Title, project.Slug, project.Summary, project.Description,
		project.Intro, project.Implementation,
		project.Image1, project.Image2, project.Image3, project.Image4,
		project.Image5, project.Image6, project.Image7, project.Image8,
		project.LiveURL, project.RepoURL, project.SortOrder, project.Featured, project.UpdatedAt,
	}
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: project slug %s", apperrors.ErrDuplicate, project.Slug)
		}
		return fmt.Errorf("failed to update project %s: %w", project.ProjectID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE project_id = $1;`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return r.findProject(ctx, "project_id = $1", projectID)
}

func (r *PgxProjectRepository) FindProjectBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return r.findProject(ctx, "slug = $1", slug)
}

func (r *PgxProjectRepository) findProject(ctx context.Context, where string, arg any) (*domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s;`, projectColumns, where)

	var p domain.Project
	err := r.pool.QueryRow(ctx, query, arg).Scan(projectDests(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &p, nil
}

// ListProjects returns every project, featured first, then by sort order.
func (r *PgxProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM projects
		ORDER BY featured DESC, sort_order, created_at DESC;`, projectColumns)
	return r.collectProjects(ctx, query)
}

// ListProjectsPage returns projects in stable creation order for batch
// iteration.
func (r *PgxProjectRepository) ListProjectsPage(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM projects
		ORDER BY created_at, project_id
		LIMIT $1 OFFSET $2;`, projectColumns)
	return r.collectProjects(ctx, query, limit, offset)
}

func (r *PgxProjectRepository) collectProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Project, error) {
		var p domain.Project
		err := row.Scan(projectDests(&p)...)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect projects: %w", err)
	}
	return projects, nil
}

func projectArgs(p domain.Project) []any {
	return []any{
		p.ProjectID, p.Title, p.Slug, p.Summary, p.Description, p.Intro, p.Implementation,
		p.Image1, p.Image2, p.Image3, p.Image4, p.Image5, p.Image6, p.Image7, p.Image8,
		p.LiveURL, p.RepoURL, p.SortOrder, p.Featured, p.CreatedAt, p.UpdatedAt,
	}
}

func projectDests(p *domain.Project) []any {
	return []any{
		&p.ProjectID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.Intro, &p.Implementation,
		&p.Image1, &p.Image2, &p.Image3, &p.Image4, &p.Image5, &p.Image6, &p.Image7, &p.Image8,
		&p.LiveURL, &p.RepoURL, &p.SortOrder, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	}
}
