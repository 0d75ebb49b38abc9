// Package model defines domain entities for the application.
package model

import "time"

// Account represents a registered login identity.
// PasswordHash holds an argon2id PHC string, never a plaintext secret.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
