package model

import "time"

// UserType separates internal staff from external company users.
type UserType string

const (
	UserInternal UserType = "INTERNAL"
	UserExternal UserType = "EXTERNAL"
)

// User is an account that can create, review or be responsible for companies.
// Authentication is out of scope; users exist so that actions can be attributed.
type User struct {
	ID          int64     `json:"id"`
	UserType    UserType  `json:"user_type"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Permissions *string   `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}
