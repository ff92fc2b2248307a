// Command backfill_portfolio is a one-shot maintenance script that fills the
// newer portfolio fields (intro, implementation, image slots) on projects
// created before those fields existed. Only NULL fields are touched; existing
// values, including deliberately empty strings, are preserved. Safe to run
// repeatedly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pvarga-dev/portfolio_backend/internal/adapters/database/pgsql"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
	"github.com/pvarga-dev/portfolio_backend/pkg/database"
)

const pageSize = 50

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	projectRepo := pgsql.NewPgxProjectRepository(dbPool)

	updated, scanned, err := backfill(ctx, projectRepo, logger)
	if err != nil {
		logger.Error("Backfill aborted", slog.String("error", err.Error()),
			slog.Int("scanned", scanned), slog.Int("updated", updated))
		os.Exit(1)
	}
	logger.Info("Backfill completed", slog.Int("scanned", scanned), slog.Int("updated", updated))
}

// backfill walks every project in pages and fills its unset portfolio fields.
func backfill(ctx context.Context, repo portsrepo.ProjectRepository, logger *slog.Logger) (updated, scanned int, err error) {
	for offset := 0; ; offset += pageSize {
		page, err := repo.ListProjectsPage(ctx, pageSize, offset)
		if err != nil {
			return updated, scanned, fmt.Errorf("failed to load project page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			return updated, scanned, nil
		}

		for i := range page {
			scanned++
			project := &page[i]
			if !fillDefaults(project) {
				continue
			}
			project.UpdatedAt = time.Now().UTC()
			if err := repo.UpdateProject(ctx, *project); err != nil {
				return updated, scanned, fmt.Errorf("failed to update project %s: %w", project.ProjectID, err)
			}
			logger.Info("Backfilled project",
				slog.String("project_id", project.ProjectID), slog.String("slug", project.Slug))
			updated++
		}

		if len(page) < pageSize {
			return updated, scanned, nil
		}
	}
}

// fillDefaults sets every NULL backfillable field to an empty-string default
// and reports whether anything changed.
func fillDefaults(p *domain.Project) bool {
	changed := false
	empty := ""
	for _, slot := range []**string{
		&p.Intro, &p.Implementation,
		&p.Image1, &p.Image2, &p.Image3, &p.Image4,
		&p.Image5, &p.Image6, &p.Image7, &p.Image8,
	} {
		if *slot == nil {
			v := empty
			*slot = &v
			changed = true
		}
	}
	return changed
}
