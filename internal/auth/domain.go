// Package auth implements registration, login and session management.
package auth

import "time"

// User is an account holder. The password hash never leaves the package.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
