package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a school administrator account. Logout is tracked by token
// revocation, not by a flag on this record.
type Admin struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" example:"office@pioneer.edu"`
	Surname   string    `json:"surname,omitempty"`
	Email     string    `json:"email" example:"office@pioneer.edu"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns a copy with the password hash removed
func (a *Admin) Sanitized() *Admin {
	if a == nil {
		return nil
	}
	c := *a
	c.Password = ""
	return &c
}
