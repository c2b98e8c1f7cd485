package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

/*
CreateServiceRequest configures a recurring service on a property. The
frequency label is derived from the category and visit count when left
blank, so callers normally send only the numbers.
*/
type CreateServiceRequest struct {
	Category     string          `json:"category" validate:"required,max=120"`
	Frequency    string          `json:"frequency" validate:"max=60"`
	TimesPerYear int             `json:"times_per_year" validate:"min=0"`
	EachTimeCost decimal.Decimal `json:"each_time_cost"`
	Status       string          `json:"status" validate:"omitempty,max=30"`
	StartDate    *string         `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes        string          `json:"notes" validate:"max=2000"`
}

type UpdateServiceRequest struct {
	Category     string          `json:"category" validate:"required,max=120"`
	Frequency    string          `json:"frequency" validate:"max=60"`
	TimesPerYear int             `json:"times_per_year" validate:"min=0"`
	EachTimeCost decimal.Decimal `json:"each_time_cost"`
	Status       string          `json:"status" validate:"omitempty,max=30"`
	StartDate    *string         `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes        string          `json:"notes" validate:"max=2000"`
}

/*
UpdateServiceStatusRequest moves a service to a new lifecycle status and
optionally fans the change out to the property's owners. Notification
outcomes come back per recipient; they never fail the update.
*/
type UpdateServiceStatusRequest struct {
	Status      string `json:"status" validate:"required,max=30"`
	NotifyEmail bool   `json:"notify_email"`
	NotifySMS   bool   `json:"notify_sms"`
}

// DispatchResult reports what happened for one notification recipient.
// Email and SMS are empty when that channel was not attempted (no
// address on file, or the admin opted out of it).
type DispatchResult struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	Username string    `json:"username"`
	Email    string    `json:"email_result,omitempty"`
	SMS      string    `json:"sms_result,omitempty"`
}

type ServiceStatusUpdateResponse struct {
	Service       models.PropertyService `json:"service"`
	Notifications []DispatchResult       `json:"notifications"`
}
