package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"codeberg.org/capworks/portal/internal/presenter"
)

// REST API request/response types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string                `json:"token"`
	User  *presenter.ActingUser `json:"user"`
}

type ProfileUpdate struct {
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type Address struct {
	Street string `json:"street,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

type JobRequest struct {
	Title  string `json:"title"`
	Salary int    `json:"salary,omitempty"`
}

type Job struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Salary int    `json:"salary,omitempty"`
}

type JobPage struct {
	Jobs       []Job `json:"jobs"`
	Pagination struct {
		Total   int  `json:"total"`
		HasMore bool `json:"has_more"`
	} `json:"pagination"`
}

type Report struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse

	err := c.Do(ctx, http.MethodPost, "/api/v1/auth/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// fetches the acting user
func (c *Client) Me(ctx context.Context) (*presenter.ActingUser, error) {
	var user presenter.ActingUser

	if err := c.Do(ctx, http.MethodGet, "/api/v1/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*presenter.ActingUser, error) {
	var user presenter.ActingUser

	if err := c.Do(ctx, http.MethodPut, "/api/v1/profile", update, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) CreateJob(ctx context.Context, job JobRequest) (*Job, error) {
	var created Job

	if err := c.Do(ctx, http.MethodPost, "/api/v1/jobs", job, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// lists the acting user's jobs
func (c *Client) ListJobs(ctx context.Context, limit, offset int) (*JobPage, error) {
	var page JobPage

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	if err := c.Do(ctx, http.MethodGet, "/api/v1/jobs?"+query.Encode(), nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job

	if err := c.Do(ctx, http.MethodGet, "/api/v1/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}

	return &job, nil
}

func (c *Client) Reports(ctx context.Context) ([]Report, error) {
	var reports []Report

	if err := c.Do(ctx, http.MethodGet, "/api/v1/reports", nil, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}
