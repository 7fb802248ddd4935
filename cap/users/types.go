package users

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// role names as they appear in tokens and payloads
const (
	RoleEmployee = "employee"
	RoleEmployer = "employer"
)

// handles user storage. the development server keeps everything in memory.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// represents an account on the platform
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	Company   *Company  `json:"company,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Company struct {
	Name string `json:"name"`

	// contact address shown to employees of the company
	Email string `json:"email"`

	// employers must finish their company profile before posting jobs
	ProfileComplete bool `json:"profile_complete"`
}

type Address struct {
	Street string `json:"street,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// contains data for updating a user's profile
type UpdateProfileRequest struct {
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address"`
}
