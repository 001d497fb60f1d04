// Package models defines the persistent data structures of the server.
package models

import "time"

// User is a registered account. Email is unique across the store; the
// uniqueness is enforced by the database index, the service-level check is
// a fast path only. PasswordHash is a salted bcrypt digest.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
