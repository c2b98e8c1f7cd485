package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceEvent is a scheduled visit: either an occurrence of a configured
// property service, or an ad-hoc activity with its own category.
type ServiceEvent struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       uuid.UUID  `json:"property_id"`
	ServiceID        *uuid.UUID `json:"service_id,omitempty"`  // nil for ad-hoc activities
	ProviderID       *uuid.UUID `json:"provider_id,omitempty"` // nil when unassigned
	ServiceCategory  string     `json:"service_category"`
	ScheduledDate    string     `json:"scheduled_date"` // YYYY-MM-DD
	Status           string     `json:"status"`
	FollowupRequired bool       `json:"followup_required"`
	FollowupNotes    string     `json:"followup_notes,omitempty"`
	LastReminderAt   *time.Time `json:"last_reminder_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	// Populated on list reads via join.
	PropertyName  string `json:"property_name,omitempty"`
	ProviderName  string `json:"provider_name,omitempty"`
	ProviderEmail string `json:"provider_email,omitempty"`
	ProviderPhone string `json:"provider_phone,omitempty"`

	// DueState is derived at read time for scheduled events
	// (Overdue / Due today / Upcoming); otherwise it mirrors Status.
	DueState string `json:"due_state,omitempty"`
}
