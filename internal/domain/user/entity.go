package user

import "time"

// User is an administrator account. Every worker belongs to exactly one user.
type User struct {
	ID           string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
