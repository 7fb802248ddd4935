package auth

import (
	"codeberg.org/capworks/portal/cap/users"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository, limiter *LoginLimiter) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", LoginHandler(userRepo, limiter))
	}
}
