package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyService is a recurring work item (category + frequency + cost)
// attached to a property.
type PropertyService struct {
	ID           uuid.UUID       `json:"id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	Category     string          `json:"category"`
	Frequency    string          `json:"frequency"`
	TimesPerYear int             `json:"times_per_year"`
	EachTimeCost decimal.Decimal `json:"each_time_cost"`
	Status       string          `json:"status"`
	StartDate    *string         `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string         `json:"end_date,omitempty"`   // YYYY-MM-DD
	Notes        string          `json:"notes,omitempty"`
	UpdatedBy    string          `json:"updated_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	// PropertyName is populated on cross-property listings via join.
	PropertyName string `json:"property_name,omitempty"`
}

// TotalAnnualCost is times/year x cost/visit for this service.
func (s *PropertyService) TotalAnnualCost() decimal.Decimal {
	return s.EachTimeCost.Mul(decimal.NewFromInt(int64(s.TimesPerYear)))
}

// FrequencyCount is one row of the portfolio-wide frequency summary.
type FrequencyCount struct {
	Frequency string `json:"frequency"`
	Count     int    `json:"count"`
}

// ServiceAttachment is an uploaded file tied to a property service.
// Rows are created on upload and never mutated.
type ServiceAttachment struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"service_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
