package models

import "time"

// TokenResponse is returned by both login endpoints
type TokenResponse struct {
	Msg       string    `json:"msg"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
