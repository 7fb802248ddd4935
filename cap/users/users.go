package users

import (
	"crypto/subtle"
	"strings"
	"time"
)

// creates a new user repository
func NewRepository() *Repository {
	return &Repository{users: make(map[string]*User)}
}

// creates a repository with the development accounts
func NewSeededRepository() *Repository {
	r := NewRepository()

	r.Add(&User{
		ID:       "u-employee",
		Email:    "employee@acme.test",
		Password: "employee",
		Role:     RoleEmployee,
		Company:  &Company{Name: "Acme", Email: "hr@acme.test", ProfileComplete: false},
	})
	r.Add(&User{
		ID:       "u-employer",
		Email:    "employer@acme.test",
		Password: "employer",
		Role:     RoleEmployer,
		Company:  &Company{Name: "Acme", Email: "hr@acme.test", ProfileComplete: false},
	})
	r.Add(&User{
		ID:       "u-ready",
		Email:    "ready@globex.test",
		Password: "ready",
		Role:     RoleEmployer,
		Company:  &Company{Name: "Globex", Email: "jobs@globex.test", ProfileComplete: true},
	})

	return r
}

// stores a copy of user
func (r *Repository) Add(user *User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.UpdatedAt = time.Now()
	r.users[user.ID] = &stored
}

// finds the user matching the credentials
func (r *Repository) Authenticate(email, password string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if !strings.EqualFold(user.Email, email) {
			continue
		}

		if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
			return nil, ErrInvalidCredentials
		}

		return clone(user), nil
	}

	return nil, ErrInvalidCredentials
}

// finds a user by their ID
func (r *Repository) FindByID(userID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	return clone(user), nil
}

// reports whether another account already uses email
func (r *Repository) EmailTaken(email, exceptUserID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, user := range r.users {
		if id != exceptUserID && strings.EqualFold(user.Email, email) {
			return true
		}
	}

	return false
}

// applies a validated profile update
func (r *Repository) UpdateProfile(userID string, req UpdateProfileRequest) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	if req.Email != "" {
		user.Email = req.Email
	}

	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if req.Address != nil {
		address := *req.Address
		user.Address = &address
	}

	user.UpdatedAt = time.Now()

	return clone(user), nil
}

func clone(user *User) *User {
	c := *user

	if user.Company != nil {
		company := *user.Company
		c.Company = &company
	}

	if user.Address != nil {
		address := *user.Address
		c.Address = &address
	}

	return &c
}
