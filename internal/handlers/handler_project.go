package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
)

// projectHandler handles HTTP requests for portfolio projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
	cache          *CacheControl
}

func newProjectHandler(ps portssvc.ProjectSvcFacade, cache *CacheControl) *projectHandler {
	return &projectHandler{projectService: ps, cache: cache}
}

func registerProjectReadRoutes(rg *gin.RouterGroup, ps portssvc.ProjectSvcFacade, cache *CacheControl) {
	h := newProjectHandler(ps, cache)

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/:slug", h.getProjectBySlug)
	}
}

func registerProjectAdminRoutes(rg *gin.RouterGroup, ps portssvc.ProjectSvcFacade) {
	h := newProjectHandler(ps, nil)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
	}
}

// listProjects godoc
// @Summary List portfolio projects
// @Description Returns all projects, featured first. Responses carry ETag and Cache-Control validators.
// @Tags projects
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Success 304 "Not modified"
// @Router /api/projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	key := httpcache.Key("projects", "list", nil)
	h.cache.serve(c, key, dto.ToProjectListResponse(projects), nil)
}

// getProjectBySlug godoc
// @Summary Get a portfolio project by slug
// @Tags projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} dto.SuccessResponse
// @Success 304 "Not modified"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/projects/{slug} [get]
func (h *projectHandler) getProjectBySlug(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	slug := c.Param("slug")

	project, err := h.projectService.GetProjectBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	key := httpcache.Key("projects", "detail", map[string]string{"slug": slug})
	lastModified := project.UpdatedAt
	h.cache.serve(c, key, dto.ToProjectResponse(project), &lastModified)
}

// createProject godoc
// @Summary Create a portfolio project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccess(dto.ToProjectResponse(project)))
}

// updateProject godoc
// @Summary Update a portfolio project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToProjectResponse(project)))
}

// deleteProject godoc
// @Summary Delete a portfolio project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"deleted": true}))
}
