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

// journalSortColumns whitelists the sortable columns of the journal listing.
var journalSortColumns = map[string]string{
	"createdAt":   "j.created_at",
	"updatedAt":   "j.updated_at",
	"publishedAt": "j.published_at",
	"title":       "j.title",
}

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxJournalRepository creates a new repository for journal entries.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{pool: pool}
}

const journalColumns = `j.journal_id, j.title, j.slug, j.content, j.excerpt, j.status,
	j.published_at, j.category_id, j.cover_image, j.audio_url,
	j.seo_title, j.seo_description, j.created_at, j.updated_at`

// SaveJournal inserts a journal and its tag references in one transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx for journal save: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO journals (journal_id, title, slug, content, excerpt, status,
			published_at, category_id, cover_image, audio_url,
			seo_title, seo_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		journal.JournalID,
		journal.Title,
		journal.Slug,
		journal.Content,
		journal.Excerpt,
		journal.Status,
		journal.PublishedAt,
		journal.CategoryID,
		journal.CoverImage,
		journal.AudioURL,
		journal.SEO.Title,
		journal.SEO.Description,
		journal.CreatedAt,
		journal.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal slug %s", apperrors.ErrDuplicate, journal.Slug)
		}
		return fmt.Errorf("failed to insert journal %s: %w", journal.JournalID, err)
	}

	if err := replaceJournalTags(ctx, tx, journal.JournalID, journal.TagIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal save: %w", err)
	}
	return nil
}

// UpdateJournal rewrites the journal row and replaces its tag references.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx for journal update: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE journals SET
			title = $2, slug = $3, content = $4, excerpt = $5, status = $6,
			published_at = $7, category_id = $8, cover_image = $9, audio_url = $10,
			seo_title = $11, seo_description = $12, updated_at = $13
		WHERE journal_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		journal.JournalID,
		journal.Title,
		journal.Slug,
		journal.Content,
		journal.Excerpt,
		journal.Status,
		journal.PublishedAt,
		journal.CategoryID,
		journal.CoverImage,
		journal.AudioURL,
		journal.SEO.Title,
		journal.SEO.Description,
		journal.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal slug %s", apperrors.ErrDuplicate, journal.Slug)
		}
		return fmt.Errorf("failed to update journal %s: %w", journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := replaceJournalTags(ctx, tx, journal.JournalID, journal.TagIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal update: %w", err)
	}
	return nil
}

func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	// journal_tags rows go with the journal via ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return r.findJournal(ctx, "j.journal_id = $1", journalID)
}

func (r *PgxJournalRepository) FindJournalBySlug(ctx context.Context, slug string) (*domain.Journal, error) {
	return r.findJournal(ctx, "j.slug = $1", slug)
}

func (r *PgxJournalRepository) findJournal(ctx context.Context, where string, arg any) (*domain.Journal, error) {
	query := fmt.Sprintf(`SELECT %s FROM journals j WHERE %s;`, journalColumns, where)

	var journal domain.Journal
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&journal.JournalID,
		&journal.Title,
		&journal.Slug,
		&journal.Content,
		&journal.Excerpt,
		&journal.Status,
		&journal.PublishedAt,
		&journal.CategoryID,
		&journal.CoverImage,
		&journal.AudioURL,
		&journal.SEO.Title,
		&journal.SEO.Description,
		&journal.CreatedAt,
		&journal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}

	tagIDs, err := r.loadTagIDs(ctx, journal.JournalID)
	if err != nil {
		return nil, err
	}
	journal.TagIDs = tagIDs
	return &journal, nil
}

// ListJournals runs the filtered listing and total count in one round trip
// each, then loads the tag references for the returned page.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter portsrepo.ListJournalsFilter) ([]domain.Journal, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conds = append(conds, "j.status = "+arg(*filter.Status))
	}
	if filter.CategorySlug != "" {
		conds = append(conds, "j.category_id IN (SELECT category_id FROM categories WHERE slug = "+arg(filter.CategorySlug)+")")
	}
	if len(filter.TagSlugs) > 0 {
		conds = append(conds, `j.journal_id IN (
			SELECT jt.journal_id FROM journal_tags jt
			JOIN tags t ON t.tag_id = jt.tag_id
			WHERE t.slug = ANY(`+arg(filter.TagSlugs)+`))`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, "(j.title ILIKE "+arg(pattern)+" OR j.excerpt ILIKE "+arg(pattern)+")")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM journals j %s;`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journals: %w", err)
	}

	sortColumn, ok := journalSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "j.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM journals j
		%s
		ORDER BY %s %s NULLS LAST, j.journal_id
		LIMIT %s OFFSET %s;`,
		journalColumns, where, sortColumn, direction, arg(filter.Limit), arg(filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list journals: %w", err)
	}
	journals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Journal, error) {
		var j domain.Journal
		err := row.Scan(
			&j.JournalID, &j.Title, &j.Slug, &j.Content, &j.Excerpt, &j.Status,
			&j.PublishedAt, &j.CategoryID, &j.CoverImage, &j.AudioURL,
			&j.SEO.Title, &j.SEO.Description, &j.CreatedAt, &j.UpdatedAt,
		)
		return j, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect journals: %w", err)
	}

	if err := r.loadTagIDsForPage(ctx, journals); err != nil {
		return nil, 0, err
	}
	return journals, total, nil
}

func (r *PgxJournalRepository) SlugExists(ctx context.Context, slug, excludeJournalID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM journals WHERE slug = $1 AND journal_id <> $2);`
	if err := r.pool.QueryRow(ctx, query, slug, excludeJournalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check journal slug %s: %w", slug, err)
	}
	return exists, nil
}

// CountJournalsWithTag is the authoritative count reconciliation reads from.
// It counts journals of any status.
func (r *PgxJournalRepository) CountJournalsWithTag(ctx context.Context, tagID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM journal_tags WHERE tag_id = $1;`
	if err := r.pool.QueryRow(ctx, query, tagID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count journals with tag %s: %w", tagID, err)
	}
	return count, nil
}

func (r *PgxJournalRepository) FindJournalIDsWithTag(ctx context.Context, tagID string, limit int) ([]string, error) {
	query := `
		SELECT journal_id FROM journal_tags
		WHERE tag_id = $1
		ORDER BY journal_id
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, tagID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find journals with tag %s: %w", tagID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect journal ids for tag %s: %w", tagID, err)
	}
	return ids, nil
}

// RemoveTagFromJournal drops one tag reference and compacts the positions of
// the remaining references so their relative order survives.
func (r *PgxJournalRepository) RemoveTagFromJournal(ctx context.Context, journalID, tagID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx for tag removal: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM journal_tags WHERE journal_id = $1 AND tag_id = $2;`,
		journalID, tagID); err != nil {
		return fmt.Errorf("failed to remove tag %s from journal %s: %w", tagID, journalID, err)
	}

	compact := `
		UPDATE journal_tags jt SET position = ranked.new_position
		FROM (
			SELECT tag_id, ROW_NUMBER() OVER (ORDER BY position) - 1 AS new_position
			FROM journal_tags WHERE journal_id = $1
		) ranked
		WHERE jt.journal_id = $1 AND jt.tag_id = ranked.tag_id;
	`
	if _, err := tx.Exec(ctx, compact, journalID); err != nil {
		return fmt.Errorf("failed to compact tag positions for journal %s: %w", journalID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tag removal: %w", err)
	}
	return nil
}

func (r *PgxJournalRepository) loadTagIDs(ctx context.Context, journalID string) ([]string, error) {
	query := `SELECT tag_id FROM journal_tags WHERE journal_id = $1 ORDER BY position;`
	rows, err := r.pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags for journal %s: %w", journalID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect tags for journal %s: %w", journalID, err)
	}
	return ids, nil
}

// loadTagIDsForPage fills TagIDs for every journal on a listing page with a
// single query.
func (r *PgxJournalRepository) loadTagIDsForPage(ctx context.Context, journals []domain.Journal) error {
	if len(journals) == 0 {
		return nil
	}
	ids := make([]string, len(journals))
	index := make(map[string]int, len(journals))
	for i := range journals {
		ids[i] = journals[i].JournalID
		index[journals[i].JournalID] = i
	}

	query := `
		SELECT journal_id, tag_id FROM journal_tags
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, position;
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load tags for journal page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var journalID, tagID string
		if err := rows.Scan(&journalID, &tagID); err != nil {
			return fmt.Errorf("failed to scan journal tag row: %w", err)
		}
		i := index[journalID]
		journals[i].TagIDs = append(journals[i].TagIDs, tagID)
	}
	return rows.Err()
}

// replaceJournalTags rewrites the journal's tag references, positions
// following the order of tagIDs.
func replaceJournalTags(ctx context.Context, tx pgx.Tx, journalID string, tagIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journal_tags WHERE journal_id = $1;`, journalID); err != nil {
		return fmt.Errorf("failed to clear tags for journal %s: %w", journalID, err)
	}
	for position, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO journal_tags (journal_id, tag_id, position) VALUES ($1, $2, $3);`,
			journalID, tagID, position); err != nil {
			return fmt.Errorf("failed to link tag %s to journal %s: %w", tagID, journalID, err)
		}
	}
	return nil
}
