package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/service"
)

// ProfileHandler handles profile read and update requests. All writes go
// through the uniqueness-checked service paths.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the authenticated account's profile
// @Summary Get profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	principal := CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "No authenticated account",
		})
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), principal.Account().ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update applies the profile fields present in the request
// @Summary Update profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	principal := CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "No authenticated account",
		})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	accountID := principal.Account().ID

	if req.DisplayName != nil {
		if err := h.profileService.UpdateDisplayName(ctx, accountID, *req.DisplayName); err != nil {
			respondError(c, err)
			return
		}
	}

	if req.PrimaryEmail != nil {
		if err := h.profileService.UpdatePrimaryEmail(ctx, accountID, *req.PrimaryEmail); err != nil {
			respondError(c, err)
			return
		}
	}

	if req.AvatarURL != nil {
		if err := h.profileService.UpdateAvatar(ctx, accountID, *req.AvatarURL); err != nil {
			respondError(c, err)
			return
		}
	}

	profile, err := h.profileService.Get(ctx, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
