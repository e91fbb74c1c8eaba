package model

import "time"

// User is the principal referenced by audit fields, uploads, and
// document assignments. Authentication itself is delegated to the JWT
// middleware; this row only carries identity and contact data.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
