package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
)

// tagHandler handles HTTP requests for tags.
type tagHandler struct {
	tagService portssvc.TagSvcFacade
	cache      *CacheControl
}

func newTagHandler(ts portssvc.TagSvcFacade, cache *CacheControl) *tagHandler {
	return &tagHandler{tagService: ts, cache: cache}
}

func registerTagReadRoutes(rg *gin.RouterGroup, ts portssvc.TagSvcFacade, cache *CacheControl) {
	h := newTagHandler(ts, cache)
	rg.GET("/tags", h.listTags)
}

func registerTagAdminRoutes(rg *gin.RouterGroup, ts portssvc.TagSvcFacade) {
	h := newTagHandler(ts, nil)

	tags := rg.Group("/tags")
	{
		tags.POST("", h.createTag)
		tags.GET("/:id", h.getTag)
		tags.PUT("/:id", h.updateTag)
		tags.DELETE("/:id", h.deleteTag)
		tags.POST("/reconcile", h.reconcileAll)
	}
}

// listTags godoc
// @Summary List tags
// @Description Returns all tags with journal counts computed over published journals. Responses carry ETag and Cache-Control validators.
// @Tags tags
// @Produce json
// @Param sortBy query string false "name, journalCount or createdAt"
// @Param sortOrder query string false "asc or desc"
// @Param hideEmpty query bool false "Omit tags with no published journals"
// @Success 200 {object} dto.SuccessResponse
// @Success 304 "Not modified"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tags [get]
func (h *tagHandler) listTags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTagsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	key := httpcache.Key("tags", "list", map[string]string{
		"sortBy":    params.SortBy,
		"sortOrder": params.SortOrder,
		"hideEmpty": strconv.FormatBool(params.HideEmpty),
	})
	h.cache.serve(c, key, dto.ToTagListResponse(tags), nil)
}

// createTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body dto.CreateTagRequest true "Tag details"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tags [post]
func (h *tagHandler) createTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccess(dto.ToTagResponse(tag)))
}

// getTag godoc
// @Summary Get a tag by ID
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tags/{id} [get]
func (h *tagHandler) getTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tag, err := h.tagService.GetTagByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToTagResponse(tag)))
}

// updateTag godoc
// @Summary Rename a tag
// @Description Renames a tag and re-verifies its stored journal count.
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param tag body dto.UpdateTagRequest true "New name"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tags/{id} [put]
func (h *tagHandler) updateTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToTagResponse(tag)))
}

// deleteTag godoc
// @Summary Delete a tag
// @Description Removes the tag from every journal that references it, then deletes it.
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tags/{id} [delete]
func (h *tagHandler) deleteTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.tagService.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"deleted": true}))
}

// reconcileAll godoc
// @Summary Recount every tag's journal count
// @Description Recomputes all stored counts from authoritative queries and reports how many were corrected.
// @Tags tags
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /api/v1/tags/reconcile [post]
func (h *tagHandler) reconcileAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	corrected, err := h.tagService.ReconcileAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"corrected": corrected}))
}
