package models

import (
	"time"

	"github.com/google/uuid"
)

// ServicePerson is a field crew member who can be assigned to scheduled
// events. Deleting one marks it inactive; rows are never removed so past
// event assignments keep resolving.
type ServicePerson struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	RoleTitle string    `json:"role_title"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
