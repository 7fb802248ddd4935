package users

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/auth"
	"codeberg.org/capworks/portal/internal/errors"
	"codeberg.org/capworks/portal/internal/logger"
	ws "codeberg.org/capworks/portal/internal/websocket"
	"github.com/gin-gonic/gin"
)

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/me [get]
// @Security BearerAuth
func GetMe(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Update email, phone and address of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/profile [put]
// @Security BearerAuth
func UpdateProfile(userRepo *users.Repository, publisher Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		if fields := validateProfile(userRepo, userID, req); len(fields) > 0 {
			errors.Validation(c, fields)
			return
		}

		user, err := userRepo.UpdateProfile(userID, users.UpdateProfileRequest{
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			if stderrors.Is(err, users.ErrNotFound) {
				errors.NotFound(c, "user")
				return
			}

			errors.InternalError(c, "failed to update profile", err)
			return
		}

		if publisher != nil {
			if err := publisher.Notify(user.ID, ws.TypeUserUpdated, user); err != nil {
				logger.Warn("failed to publish user update", "user_id", user.ID, "error", err)
			}
		}

		c.JSON(http.StatusOK, user)
	}
}
