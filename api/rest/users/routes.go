package users

import (
	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, userRepo *users.Repository, publisher Publisher) {
	protected := rg.Group("")
	protected.Use(auth.AuthMiddleware())

	protected.GET("/me", GetMe(userRepo))
	protected.PUT("/profile", UpdateProfile(userRepo, publisher))
}
