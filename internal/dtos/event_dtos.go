package dtos

import "github.com/google/uuid"

/*
CreateEventRequest schedules a visit. ServiceID links the event to a
configured property service; leave it nil for an ad-hoc activity and
supply the category instead. ProviderID optionally assigns an active
crew member.
*/
type CreateEventRequest struct {
	PropertyID      uuid.UUID  `json:"property_id" validate:"required"`
	ServiceID       *uuid.UUID `json:"service_id"`
	ProviderID      *uuid.UUID `json:"provider_id"`
	ServiceCategory string     `json:"service_category" validate:"max=120"`
	ScheduledDate   string     `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
}

type UpdateEventStatusRequest struct {
	Status           string `json:"status" validate:"required,max=30"`
	FollowupRequired bool   `json:"followup_required"`
	FollowupNotes    string `json:"followup_notes" validate:"max=2000"`
}

type AssignEventProviderRequest struct {
	ProviderID *uuid.UUID `json:"provider_id"`
}

// EventReminderResponse reports the two best-effort reminder sends to
// the assigned provider.
type EventReminderResponse struct {
	EmailResult string `json:"email_result,omitempty"`
	SMSResult   string `json:"sms_result,omitempty"`
}
