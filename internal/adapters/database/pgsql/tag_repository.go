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

type PgxTagRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTagRepository creates a new repository for tags.
func NewPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepository {
	return &PgxTagRepository{pool: pool}
}

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `
		INSERT INTO tags (tag_id, name, slug, journal_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		tag.TagID, tag.Name, tag.Slug, tag.JournalCount, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tag %s", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to insert tag %s: %w", tag.TagID, err)
	}
	return nil
}

func (r *PgxTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	query := `UPDATE tags SET name = $2, slug = $3, updated_at = $4 WHERE tag_id = $1;`
	cmd, err := r.pool.Exec(ctx, query, tag.TagID, tag.Name, tag.Slug, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tag %s", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to update tag %s: %w", tag.TagID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateJournalCount writes a reconciled count without touching updated_at;
// count corrections are maintenance, not edits.
func (r *PgxTagRepository) UpdateJournalCount(ctx context.Context, tagID string, count int) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE tags SET journal_count = $2 WHERE tag_id = $1;`, tagID, count)
	if err != nil {
		return fmt.Errorf("failed to update journal count for tag %s: %w", tagID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTagRepository) DeleteTag(ctx context.Context, tagID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE tag_id = $1;`, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	query := `
		SELECT tag_id, name, slug, journal_count, created_at, updated_at
		FROM tags WHERE tag_id = $1;
	`
	var tag domain.Tag
	err := r.pool.QueryRow(ctx, query, tagID).Scan(
		&tag.TagID, &tag.Name, &tag.Slug, &tag.JournalCount, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag %s: %w", tagID, err)
	}
	return &tag, nil
}

func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	query := `
		SELECT tag_id, name, slug, journal_count, created_at, updated_at
		FROM tags WHERE tag_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find tags by ids: %w", err)
	}
	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Tag, error) {
		var t domain.Tag
		err := row.Scan(&t.TagID, &t.Name, &t.Slug, &t.JournalCount, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect tags: %w", err)
	}
	return tags, nil
}

// ListTags returns tags with JournalCount computed over published journals
// only. The stored journal_count column tracks all statuses and is not what
// the public API exposes.
func (r *PgxTagRepository) ListTags(ctx context.Context, filter portsrepo.ListTagsFilter) ([]domain.Tag, error) {
	sortColumn := map[string]string{
		"name":         "t.name",
		"journalCount": "journal_count",
		"createdAt":    "t.created_at",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "t.name"
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}
	having := ""
	if filter.HideEmpty {
		having = "HAVING COUNT(j.journal_id) > 0"
	}

	query := fmt.Sprintf(`
		SELECT t.tag_id, t.name, t.slug,
			COUNT(j.journal_id) AS journal_count,
			t.created_at, t.updated_at
		FROM tags t
		LEFT JOIN journal_tags jt ON jt.tag_id = t.tag_id
		LEFT JOIN journals j ON j.journal_id = jt.journal_id AND j.status = 'published'
		GROUP BY t.tag_id
		%s
		ORDER BY %s %s, t.name;`, having, sortColumn, direction)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Tag, error) {
		var t domain.Tag
		err := row.Scan(&t.TagID, &t.Name, &t.Slug, &t.JournalCount, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect tags: %w", err)
	}
	return tags, nil
}

func (r *PgxTagRepository) ListAllTagIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT tag_id FROM tags ORDER BY tag_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect tag ids: %w", err)
	}
	return ids, nil
}
