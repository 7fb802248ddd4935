package jobs

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/capworks/portal/api/rest/pagination"
	"codeberg.org/capworks/portal/cap/jobs"
	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/auth"
	"codeberg.org/capworks/portal/internal/errors"
	"codeberg.org/capworks/portal/internal/logger"
	"github.com/gin-gonic/gin"
)

// CreateJob godoc
// @Summary Post a job
// @Description Creates a job for the employer's company. Fails while the company profile is incomplete.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body CreateJobRequest true "Job"
// @Success 201 {object} jobs.Job
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/jobs [post]
// @Security BearerAuth
func CreateJob(userRepo *users.Repository, store *jobs.Store) gin.HandlerFunc {
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

		var req CreateJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		if user.Company == nil || !user.Company.ProfileComplete {
			errors.Validation(c, incompleteProfile(user))
			return
		}

		fields := errors.FieldErrors{}
		if strings.TrimSpace(req.Title) == "" {
			fields["title"] = errors.Field("Title is required.", errors.CodeRequired)
		}
		if req.Salary < 0 {
			fields["salary"] = errors.Field("Salary cannot be negative.", errors.CodeMinValue)
		}
		if len(fields) > 0 {
			errors.Validation(c, fields)
			return
		}

		job := store.Create(user.ID, strings.TrimSpace(req.Title), req.Salary)

		logger.Info("job created", "job_id", job.ID, "user_id", user.ID)

		c.JSON(http.StatusCreated, job)
	}
}

// employees are pointed at their employer, employers get a form-wide error
// on their company
func incompleteProfile(user *users.User) errors.FieldErrors {
	if user.Role == users.RoleEmployee {
		return errors.FieldErrors{
			"job": errors.Field("Your company has not finished its profile.", errors.CodeIncompleteProfile),
		}
	}

	return errors.FieldErrors{
		"company": errors.All(errors.FieldError{
			Message: "Your company profile is incomplete.",
			Code:    errors.CodeIncompleteProfile,
		}),
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListJobs godoc
// @Summary List own jobs
// @Tags jobs
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} ListJobsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/jobs [get]
// @Security BearerAuth
func ListJobs(store *jobs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		params := pagination.FromQuery(c, defaultPageSize, maxPageSize)
		all := store.ListByOwner(userID)

		c.JSON(http.StatusOK, ListJobsResponse{
			Jobs:       pagination.Slice(all, params),
			Pagination: pagination.NewMeta(params, len(all)),
		})
	}
}

// GetJob godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} jobs.Job
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/jobs/{id} [get]
// @Security BearerAuth
func GetJob(store *jobs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := store.Get(c.Param("id"))
		if err != nil {
			if stderrors.Is(err, jobs.ErrNotFound) {
				errors.NotFound(c, "job")
				return
			}

			errors.InternalError(c, "failed to fetch job", err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

// reporting has no backend in development, so every request fails
var errReportsUnavailable = fmt.Errorf("reporting backend unavailable")

// ListReports godoc
// @Summary List reports
// @Description Always fails with 500 on the development server
// @Tags jobs
// @Produce json
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/reports [get]
// @Security BearerAuth
func ListReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		errors.InternalError(c, "failed to load reports", errReportsUnavailable)
	}
}
