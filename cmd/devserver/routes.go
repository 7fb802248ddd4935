package main

import (
	"codeberg.org/capworks/portal/api/rest/auth"
	"codeberg.org/capworks/portal/api/rest/health"
	"codeberg.org/capworks/portal/api/rest/jobs"
	"codeberg.org/capworks/portal/api/rest/users"
	"codeberg.org/capworks/portal/api/websocket"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler(server.hub))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.limiter)
		users.RegisterRoutes(v1, server.userRepo, server.hub)
		jobs.RegisterRoutes(v1, server.userRepo, server.jobStore)
		websocket.RegisterRoutes(v1, server.hub, server.userRepo)
	}
}
