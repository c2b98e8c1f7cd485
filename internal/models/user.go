package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. Owners are mapped to exactly one property;
// admins have no property mapping.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never serialize to JSON
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// PropertyName is populated on list/detail reads via join; not a column.
	PropertyName string `json:"property_name,omitempty"`
}
