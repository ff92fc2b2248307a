package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
)

// cacheHandler exposes cache observability and warming to the admin API.
type cacheHandler struct {
	metrics *httpcache.Metrics
	warmer  *httpcache.Warmer
	cfg     *config.Config
}

func newCacheHandler(metrics *httpcache.Metrics, warmer *httpcache.Warmer, cfg *config.Config) *cacheHandler {
	return &cacheHandler{metrics: metrics, warmer: warmer, cfg: cfg}
}

func registerCacheRoutes(rg *gin.RouterGroup, metrics *httpcache.Metrics, warmer *httpcache.Warmer, cfg *config.Config) {
	h := newCacheHandler(metrics, warmer, cfg)

	cache := rg.Group("/cache")
	{
		cache.GET("/metrics", h.getMetrics)
		cache.DELETE("/metrics", h.clearOldMetrics)
		cache.POST("/warm", h.warm)
	}
}

// getMetrics godoc
// @Summary Per-key cache hit/miss metrics
// @Tags cache
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /api/v1/cache/metrics [get]
func (h *cacheHandler) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccess(h.metrics.Snapshot()))
}

// clearOldMetrics godoc
// @Summary Prune cache metrics not accessed recently
// @Tags cache
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /api/v1/cache/metrics [delete]
func (h *cacheHandler) clearOldMetrics(c *gin.Context) {
	removed := h.metrics.ClearOld(h.cfg.CacheMetricsMaxAge)
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"removed": removed}))
}

// warm godoc
// @Summary Warm the popular read endpoints
// @Description Fetches the configured popular paths plus anything queued, priming downstream caches.
// @Tags cache
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /api/v1/cache/warm [post]
func (h *cacheHandler) warm(c *gin.Context) {
	warmed := h.warmer.WarmPopular(c.Request.Context())
	warmed += h.warmer.Warm(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"warmed": warmed}))
}
