package auth

import "codeberg.org/capworks/portal/cap/users"

// credentials posted to the login endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// returned after a successful login
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}
