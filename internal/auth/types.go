package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims
type Claims struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CompanyEmail string `json:"company_email,omitempty"`
	jwt.RegisteredClaims
}

// the identity a token is issued for
type Identity struct {
	UserID       string
	Email        string
	Role         string
	CompanyEmail string
}

// gin context keys set by the middleware
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
)
