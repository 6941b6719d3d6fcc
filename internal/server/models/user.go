package models

import "time"

// User is an admin account.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
