package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User account of the local identity provider
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
}

type UserClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}
