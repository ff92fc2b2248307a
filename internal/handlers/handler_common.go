package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/utils/httpcache"
)

// respondServiceError maps a service error onto the standard error envelope.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewError(dto.CodeNotFound, "Resource not found", nil))
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, dto.NewError(dto.CodeValidation, err.Error(), nil))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewError(dto.CodeUnauthorized, "Unauthorized", nil))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewError(dto.CodeForbidden, "Forbidden", nil))
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewError(dto.CodeInternal, "Internal server error", nil))
	}
}

// respondBindError reports a request binding failure.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewError(dto.CodeValidation, "Invalid request format", err.Error()))
}

// CacheControl carries the caching policy and the metrics instance shared by
// the public read handlers.
type CacheControl struct {
	metrics *httpcache.Metrics
	cfg     httpcache.Config
}

// NewCacheControl bundles a metrics instance with a caching policy.
func NewCacheControl(metrics *httpcache.Metrics, cfg httpcache.Config) *CacheControl {
	return &CacheControl{metrics: metrics, cfg: cfg}
}

// serve writes ETag, Cache-Control and Last-Modified, then answers 304 when
// the request's validators still match and the full enveloped payload
// otherwise. A 304 counts as a cache hit, a full response as a miss.
func (cc *CacheControl) serve(c *gin.Context, key string, data any, lastModified *time.Time) {
	etag := httpcache.ETag(data, lastModified)
	c.Header("ETag", etag)
	c.Header("Cache-Control", httpcache.ControlHeader(cc.cfg))
	if lastModified != nil {
		c.Header("Last-Modified", lastModified.UTC().Format(http.TimeFormat))
	}

	if httpcache.NotModified(c.Request, etag, lastModified) {
		cc.metrics.RecordHit(key)
		c.Status(http.StatusNotModified)
		return
	}
	cc.metrics.RecordMiss(key)
	c.JSON(http.StatusOK, dto.NewSuccess(data))
}
