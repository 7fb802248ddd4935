package auth

import (
	stderrors "errors"
	"net/http"
	"strings"

	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/auth"
	"codeberg.org/capworks/portal/internal/errors"
	"codeberg.org/capworks/portal/internal/logger"
	"github.com/gin-gonic/gin"
)

// LoginHandler godoc
// @Summary Log in
// @Description Exchange email and password for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 429 {object} errors.FieldErrors
// @Router /api/v1/auth/login [post]
func LoginHandler(userRepo *users.Repository, limiter *LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			logger.Warn("login throttled", "ip", c.ClientIP())
			errors.FieldStatus(c, http.StatusTooManyRequests, errors.FieldErrors{
				errors.AllKey: errors.Field("Too many login attempts.", errors.CodeThrottled),
			})
			return
		}

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		if fields := validateLogin(req); len(fields) > 0 {
			errors.Validation(c, fields)
			return
		}

		user, err := userRepo.Authenticate(req.Email, req.Password)
		if err != nil {
			if stderrors.Is(err, users.ErrInvalidCredentials) {
				errors.Validation(c, errors.FieldErrors{
					errors.AllKey: errors.Field("Invalid email or password.", errors.CodeInvalidLogin),
				})
				return
			}

			errors.InternalError(c, "failed to authenticate", err)
			return
		}

		identity := auth.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		}
		if user.Company != nil {
			identity.CompanyEmail = user.Company.Email
		}

		token, err := auth.GenerateJWT(identity)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		logger.Info("user logged in", "user_id", user.ID, "role", user.Role)

		c.JSON(http.StatusOK, AuthResponse{
			User:  user,
			Token: token,
		})
	}
}

func validateLogin(req LoginRequest) errors.FieldErrors {
	fields := errors.FieldErrors{}

	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = errors.Field("Email is required.", errors.CodeRequired)
	}

	if req.Password == "" {
		fields["password"] = errors.Field("Password is required.", errors.CodeRequired)
	}

	return fields
}
