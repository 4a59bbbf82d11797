package models

import "time"

type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	// IngestEmail is the generated address that receipt emails are
	// forwarded to. Maps uniquely back to this user.
	IngestEmail string `json:"ingest_email"`
}
