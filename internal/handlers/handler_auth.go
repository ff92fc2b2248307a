package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/pvarga-dev/portfolio_backend/internal/apperrors"
	"github.com/pvarga-dev/portfolio_backend/internal/core/domain"
	portssvc "github.com/pvarga-dev/portfolio_backend/internal/core/ports/services"
	"github.com/pvarga-dev/portfolio_backend/internal/dto"
	"github.com/pvarga-dev/portfolio_backend/internal/middleware"
	"github.com/pvarga-dev/portfolio_backend/internal/utils"
	"github.com/pvarga-dev/portfolio_backend/pkg/config"
)

// authHandler handles login, token refresh and logout.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	google       portssvc.GoogleOAuthSvcFacade
	cfg          *config.Config
}

func newAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  services.User,
		tokenService: services.Token,
		google:       services.Google,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the authentication routes with a per-IP rate
// limit on the credential-bearing endpoints.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services, cfg)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth", middleware.RateLimit(ipLimiter))
	{
		auth.POST("/login", h.login)
		auth.POST("/google/exchange", h.googleExchange)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

// login godoc
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, dto.NewError(dto.CodeUnauthorized, "Invalid credentials", nil))
			return
		}
		respondServiceError(c, logger, err)
		return
	}
	if user.AuthProvider != domain.ProviderLocal || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, dto.NewError(dto.CodeUnauthorized, "Invalid credentials", nil))
		return
	}

	h.issueTokens(c, logger, user)
}

// googleExchange godoc
// @Summary Log in with a Google authorization code
// @Description Exchanges the code posted by the front end after the OAuth redirect, provisioning the account on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/google/exchange [post]
func (h *authHandler) googleExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	identity, err := h.google.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		respondServiceError(c, logger, err)
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(),
		identity.ProviderUserID, identity.Email, identity.Name)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	h.issueTokens(c, logger, user)
}

// refresh godoc
// @Summary Rotate the access token using the refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, rawToken, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewError(dto.CodeUnauthorized, "Missing refresh token", nil))
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		logger.Warn("Refresh token validation failed", slog.String("error", err.Error()))
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, dto.NewError(dto.CodeUnauthorized, "Invalid refresh token", nil))
		return
	}

	// Rotation: every refresh mints and stores a new refresh token.
	h.issueTokens(c, logger, user)
}

// logout godoc
// @Summary Log out and invalidate the refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/v1/auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if userID, _, ok := h.readRefreshCookie(c); ok {
		if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			logger.Warn("Failed to clear refresh token on logout", slog.String("error", err.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.NewSuccess(gin.H{"loggedOut": true}))
}

// issueTokens mints the access/refresh pair, persists the refresh hash and
// writes both the response body and the httpOnly cookie.
func (h *authHandler) issueTokens(c *gin.Context, logger *slog.Logger, user *domain.User) {
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	if err := h.userService.StoreRefreshToken(c.Request.Context(), user.UserID, refreshToken, refreshExpiry); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName,
		user.UserID+"."+refreshToken,
		maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	c.JSON(http.StatusOK, dto.NewSuccess(dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}))
}

// readRefreshCookie splits the "<userID>.<token>" cookie value.
func (h *authHandler) readRefreshCookie(c *gin.Context) (userID, rawToken string, ok bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}
