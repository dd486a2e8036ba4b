// Package model defines the data structures used throughout the application.
package model

import "time"

// User is a registered tracker account.
//
// Usernames are unique across all users — the store enforces this with a
// UNIQUE constraint and a duplicate insert surfaces as a domain error, not
// a generic one. Users are never updated or deleted by this service.
type User struct {
	ID        string    `json:"id"        db:"id"`
	Username  string    `json:"username"  db:"username"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
