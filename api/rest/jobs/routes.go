package jobs

import (
	"codeberg.org/capworks/portal/cap/jobs"
	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, userRepo *users.Repository, store *jobs.Store) {
	protected := rg.Group("")
	protected.Use(auth.AuthMiddleware())

	protected.GET("/jobs", ListJobs(store))
	protected.POST("/jobs", CreateJob(userRepo, store))
	protected.GET("/jobs/:id", GetJob(store))
	protected.GET("/reports", ListReports())
}
