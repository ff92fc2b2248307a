package services

import (
	portsrepo "github.com/pvarga-dev/portfolio_backend/internal/core/ports/repositories"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
)

// NewServiceContainer wires every service with its repositories. The tag
// service doubles as the reconciler the journal service reports tag-set
// changes to.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	tagSvc := NewTagService(repos.TagRepo, repos.JournalRepo)

	return &portssvc.ServiceContainer{
		Journal:  NewJournalService(repos.JournalRepo, repos.TagRepo, repos.CategoryRepo, tagSvc),
		Tag:      tagSvc,
		Category: NewCategoryService(repos.CategoryRepo),
		Project:  NewProjectService(repos.ProjectRepo),
		User:     NewUserService(repos.UserRepo),
		Token:    NewTokenService(repos.UserRepo, cfg),
		Google:   NewGoogleOAuthService(cfg),
		Media:    NewMediaService(repos.Media),
	}
}
