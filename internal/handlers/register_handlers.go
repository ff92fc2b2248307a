package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pvarga-dev/portfolio_backend/cmd/docs"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces. The public read API lives under /api with caching headers; the
// admin API lives under /api/v1 behind JWT auth.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics *httpcache.Metrics,
	warmer *httpcache.Warmer,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services)
	setupPublicReadRoutes(r, cfg, services, metrics)
	setupAPIV1Routes(r, cfg, services, metrics, warmer)
	setupSwaggerRoutes(r, cfg)
}

// setupPublicReadRoutes configures the unauthenticated cached read surface.
func setupPublicReadRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics *httpcache.Metrics,
) {
	cache := NewCacheControl(metrics, httpcache.Config{
		MaxAge:               cfg.CacheMaxAge,
		StaleWhileRevalidate: cfg.CacheStaleWhileRevalidate,
	})

	api := r.Group("/api")
	RegisterJournalReadRoutes(api, services.Journal, cache)
	registerTagReadRoutes(api, services.Tag, cache)
	registerCategoryReadRoutes(api, services.Category, cache)
	registerProjectReadRoutes(api, services.Project, cache)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics *httpcache.Metrics,
	warmer *httpcache.Warmer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerJournalAdminRoutes(v1, services.Journal)
	registerTagAdminRoutes(v1, services.Tag)
	registerCategoryAdminRoutes(v1, services.Category)
	registerProjectAdminRoutes(v1, services.Project)
	registerMediaRoutes(v1, services.Media)
	registerCacheRoutes(v1, metrics, warmer, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
