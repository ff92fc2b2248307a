package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
)

// categoryHandler handles HTTP requests for categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	cache           *CacheControl
}

func newCategoryHandler(cs portssvc.CategorySvcFacade, cache *CacheControl) *categoryHandler {
	return &categoryHandler{categoryService: cs, cache: cache}
}

func registerCategoryReadRoutes(rg *gin.RouterGroup, cs portssvc.CategorySvcFacade, cache *CacheControl) {
	h := newCategoryHandler(cs, cache)
	rg.GET("/categories", h.listCategories)
}

func registerCategoryAdminRoutes(rg *gin.RouterGroup, cs portssvc.CategorySvcFacade) {
	h := newCategoryHandler(cs, nil)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("/:id", h.getCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Returns all categories with journal counts computed over published journals. Responses carry ETag and Cache-Control validators.
// @Tags categories
// @Produce json
// @Param sortBy query string false "name, journalCount or createdAt"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.SuccessResponse
// @Success 304 "Not modified"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	key := httpcache.Key("categories", "list", map[string]string{
		"sortBy":    params.SortBy,
		"sortOrder": params.SortOrder,
	})
	h.cache.serve(c, key, dto.ToCategoryListResponse(categories), nil)
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccess(dto.ToCategoryResponse(category)))
}

// getCategory godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/categories/{id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToCategoryResponse(category)))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToCategoryResponse(category)))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Deletes a category; journals referencing it keep existing without one.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"deleted": true}))
}
