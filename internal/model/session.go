package model

import "time"

// Session refresh-token session of the local identity provider
type Session struct {
	ID           string
	UserID       string
	RefreshToken string
	ExpiresAt    time.Time
}
