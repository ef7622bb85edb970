package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/service"
)

const refreshCookiePath = "/api/v1/auth/refresh"

// AuthHandler handles federated authentication requests
type AuthHandler struct {
	identityService service.IdentityService
	sessionService  service.SessionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService service.IdentityService, sessionService service.SessionService) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
		sessionService:  sessionService,
	}
}

// Callback handles a federated login callback
// @Summary Handle provider callback
// @Description Resolve a provider credential to an account (login) or attach it to the authenticated account (mode=link)
// @Tags auth
// @Accept json
// @Produce json
// @Param provider path string true "Provider name"
// @Param mode query string false "Set to 'link' to attach the provider to the current account"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/callback/{provider} [post]
func (h *AuthHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
		return
	}

	// Mode is an out-of-band marker; the core only sees the decided path.
	if c.Query("mode") == "link" {
		h.link(c, raw, provider)
		return
	}

	h.login(c, raw, provider)
}

func (h *AuthHandler) login(c *gin.Context, raw map[string]any, provider string) {
	account, err := h.identityService.ResolveLogin(c.Request.Context(), raw, provider)
	if err != nil {
		respondError(c, err)
		return
	}

	response, err := h.sessionService.IssueTokens(c.Request.Context(), account, provider)
	if err != nil {
		respondError(c, err)
		return
	}

	// Set refresh token in httpOnly cookie
	c.SetCookie("refresh_token", response.RefreshToken, response.ExpiresIn, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, response.AuthResponse)
}

func (h *AuthHandler) link(c *gin.Context, raw map[string]any, provider string) {
	var current *domain.Account
	if principal := CurrentPrincipal(c); principal != nil {
		current = principal.Account()
	}

	status, err := h.identityService.Link(c.Request.Context(), current, raw, provider)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Me reports authentication and provider link status
// @Summary Get auth status
// @Description Report whether the caller is authenticated and which providers are linked
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	var account *domain.Account
	if principal := CurrentPrincipal(c); principal != nil {
		account = principal.Account()
	}

	status, err := h.identityService.AuthStatus(c.Request.Context(), account)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Refresh handles token refresh
// @Summary Refresh tokens
// @Description Rotate the refresh token and issue a new token pair
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Refresh token not found in cookie",
		})
		return
	}

	response, err := h.sessionService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
		return
	}

	// Set new refresh token in httpOnly cookie
	c.SetCookie("refresh_token", response.RefreshToken, response.ExpiresIn, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, response.AuthResponse)
}

// Logout handles logout
// @Summary Logout
// @Description Invalidate the current refresh token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal := CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "No authenticated account",
		})
		return
	}

	refreshToken, _ := c.Cookie("refresh_token")

	if err := h.sessionService.Logout(c.Request.Context(), principal.Account().ID, refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	// Clear refresh token cookie
	c.SetCookie("refresh_token", "", -1, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}
