package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the caller identity carried by an already-issued JWT.
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

// Caller is the identity the services act on behalf of.
type Caller struct {
	UserID  string
	Email   string
	IsAdmin bool
}

func (c *Claims) Caller() Caller {
	return Caller{UserID: c.UserID.String(), Email: c.Email, IsAdmin: c.IsAdmin}
}
