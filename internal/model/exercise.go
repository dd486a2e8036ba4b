package model

import "time"

// Exercise is one logged workout entry.
//
// UserID references a User by internal ID but is deliberately NOT a foreign
// key in the schema. The service verifies the user after saving the exercise
// and deletes the record again if the user doesn't exist, so a failed add
// never leaves an orphaned row behind.
type Exercise struct {
	ID          string    `json:"id"          db:"id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Description string    `json:"description" db:"description"`
	Duration    int       `json:"duration"    db:"duration"` // minutes
	Date        time.Time `json:"date"        db:"date"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}
