package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	cache          *CacheControl
}

func newJournalHandler(js portssvc.JournalSvcFacade, cache *CacheControl) *journalHandler {
	return &journalHandler{journalService: js, cache: cache}
}

// RegisterJournalReadRoutes registers the public cached read endpoints.
func RegisterJournalReadRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade, cache *CacheControl) {
	h := newJournalHandler(js, cache)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.GET("/:slug", h.getJournalBySlug)
	}
}

// registerJournalAdminRoutes registers the authenticated write endpoints.
func registerJournalAdminRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newJournalHandler(js, nil)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("/:id", h.getJournalByID)
		journals.PUT("/:id", h.updateJournal)
		journals.DELETE("/:id", h.deleteJournal)
	}
}

// listJournals godoc
// @Summary List journal entries
// @Description Returns a page of journals plus the categories and tags available for filtering. Responses carry ETag and Cache-Control validators.
// @Tags journals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param category query string false "Category slug"
// @Param tags query []string false "Tag slugs"
// @Param status query string false "draft or published"
// @Param search query string false "Title/excerpt search"
// @Param sortBy query string false "createdAt, updatedAt, publishedAt or title"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.SuccessResponse
// @Success 304 "Not modified"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	// The public surface only ever lists published entries.
	params.Status = string(domain.JournalStatusPublished)

	result, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	docs := make([]dto.JournalResponse, len(result.Journals))
	for i := range result.Journals {
		docs[i] = dto.ToJournalResponse(&result.Journals[i], false)
	}
	payload := dto.JournalListResponse{
		Docs:       docs,
		Pagination: dto.NewPagination(result.Page, result.Limit, result.Total),
		Categories: dto.ToCategoryListResponse(result.Categories),
		Tags:       dto.ToTagListResponse(result.Tags),
	}

	key := httpcache.Key("journals", "list", listCacheParams(params))
	h.cache.serve(c, key, payload, nil)
}

// getJournalBySlug godoc
// @Summary Get a journal entry by slug
// @Description Returns one published journal with full content. Sends Last-Modified and answers conditional requests with 304.
// @Tags journals
// @Produce json
// @Param slug path string true "Journal slug"
// @Success 200 {object} dto.SuccessResponse
// @Success 304 "Not modified"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/journals/{slug} [get]
func (h *journalHandler) getJournalBySlug(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	slug := c.Param("slug")

	journal, err := h.journalService.GetJournalBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	// Drafts are invisible on the public surface.
	if journal.Status != domain.JournalStatusPublished {
		c.JSON(http.StatusNotFound, dto.NewError(dto.CodeNotFound, "Resource not found", nil))
		return
	}

	payload := dto.ToJournalResponse(journal, true)
	key := httpcache.Key("journals", "detail", map[string]string{"slug": slug})
	lastModified := journal.UpdatedAt
	h.cache.serve(c, key, payload, &lastModified)
}

// createJournal godoc
// @Summary Create a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccess(dto.ToJournalResponse(journal, true)))
}

// getJournalByID godoc
// @Summary Get a journal entry by ID (any status)
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/journals/{id} [get]
func (h *journalHandler) getJournalByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToJournalResponse(journal, true)))
}

// updateJournal godoc
// @Summary Update a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToJournalResponse(journal, true)))
}

// deleteJournal godoc
// @Summary Delete a journal entry
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/journals/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.journalService.DeleteJournal(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"deleted": true}))
}

// listCacheParams projects the listing parameters into the cache key. Tag
// slugs are sorted so equivalent filters share an entry.
func listCacheParams(params dto.ListJournalsParams) map[string]string {
	out := map[string]string{
		"page":      strconv.Itoa(params.Page),
		"limit":     strconv.Itoa(params.Limit),
		"sortBy":    params.SortBy,
		"sortOrder": params.SortOrder,
	}
	if params.Category != "" {
		out["category"] = params.Category
	}
	if len(params.Tags) > 0 {
		tags := append([]string(nil), params.Tags...)
		sort.Strings(tags)
		out["tags"] = strings.Join(tags, ",")
	}
	if params.Search != "" {
		out["search"] = params.Search
	}
	return out
}
