package model

import "time"

// Responsible links an external user to a company as its active contact.
// A company has at most one active responsible; assigning a new one
// deactivates the previous row instead of deleting it.
type Responsible struct {
	ID               int64     `json:"id"`
	CompanyID        int64     `json:"company_id"`
	ExternalUserID   int64     `json:"external_user_id"`
	Active           bool      `json:"active"`
	AssignedByUserID *int64    `json:"assigned_by_user_id"`
	AssignedAt       time.Time `json:"assigned_at"`
}
