package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
)

// mediaHandler handles asset uploads for journals and projects.
type mediaHandler struct {
	mediaService portssvc.MediaSvcFacade
}

func newMediaHandler(ms portssvc.MediaSvcFacade) *mediaHandler {
	return &mediaHandler{mediaService: ms}
}

func registerMediaRoutes(rg *gin.RouterGroup, ms portssvc.MediaSvcFacade) {
	h := newMediaHandler(ms)

	media := rg.Group("/media")
	{
		media.POST("/images", h.uploadImage)
		media.POST("/audio", h.uploadAudio)
		media.DELETE("", h.deleteMedia)
	}
}

// uploadImage godoc
// @Summary Upload an image
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/media/images [post]
func (h *mediaHandler) uploadImage(c *gin.Context) {
	h.upload(c, h.mediaService.UploadImage)
}

// uploadAudio godoc
// @Summary Upload a journal audio file
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file (mp3, wav, ogg, m4a, aac, flac)"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/media/audio [post]
func (h *mediaHandler) uploadAudio(c *gin.Context) {
	h.upload(c, h.mediaService.UploadAudio)
}

func (h *mediaHandler) upload(c *gin.Context, store func(ctx context.Context, filename, contentType string, data []byte) (string, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filename, contentType, data, err := readUpload(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	url, err := store(c.Request.Context(), filename, contentType, data)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccess(dto.MediaUploadResponse{URL: url}))
}

// deleteMedia godoc
// @Summary Delete an uploaded asset by its public URL
// @Tags media
// @Produce json
// @Param url query string true "Public URL returned by an upload"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/media [delete]
func (h *mediaHandler) deleteMedia(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.mediaService.Delete(c.Request.Context(), c.Query("url")); err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"deleted": true}))
}

func readUpload(c *gin.Context) (filename, contentType string, data []byte, err error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", "", nil, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return "", "", nil, err
	}
	return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, nil
}
