package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCategoryRepository creates a new repository for categories.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, slug, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Slug,
		category.Description, category.Color, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %s", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to insert category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories SET name = $2, slug = $3, description = $4, color = $5, updated_at = $6
		WHERE category_id = $1;
	`
	cmd, err := r.pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Slug,
		category.Description, category.Color, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %s", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	// Journals referencing the category get category_id nulled by the FK.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return r.findCategory(ctx, "category_id = $1", categoryID)
}

func (r *PgxCategoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findCategory(ctx, "slug = $1", slug)
}

func (r *PgxCategoryRepository) findCategory(ctx context.Context, where string, arg any) (*domain.Category, error) {
	query := fmt.Sprintf(`
		SELECT category_id, name, slug, description, color, created_at, updated_at
		FROM categories WHERE %s;`, where)

	var c domain.Category
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &c, nil
}

// ListCategories returns categories with JournalCount computed over published
// journals at read time; nothing is stored.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, filter portsrepo.ListCategoriesFilter) ([]domain.Category, error) {
	sortColumn := map[string]string{
		"name":         "c.name",
		"journalCount": "journal_count",
		"createdAt":    "c.created_at",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "c.name"
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT c.category_id, c.name, c.slug, c.description, c.color,
			COUNT(j.journal_id) AS journal_count,
			c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN journals j ON j.category_id = c.category_id AND j.status = 'published'
		GROUP BY c.category_id
		ORDER BY %s %s, c.name;`, sortColumn, direction)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.Color,
			&c.JournalCount, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	return categories, nil
}
