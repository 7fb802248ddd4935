package jobs

import (
	"codeberg.org/capworks/portal/api/rest/pagination"
	"codeberg.org/capworks/portal/cap/jobs"
)

// body of POST /jobs
type CreateJobRequest struct {
	Title  string `json:"title"`
	Salary int    `json:"salary"`
}

// a page of the caller's jobs
type ListJobsResponse struct {
	Jobs       []jobs.Job      `json:"jobs"`
	Pagination pagination.Meta `json:"pagination"`
}
