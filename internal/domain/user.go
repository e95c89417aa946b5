package domain

import "time"

// User is the domain model for listener accounts.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Country         *string
	ProfileImageURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
