package dtos

import (
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

type CreatePropertyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=300"`
	City    string `json:"city" validate:"max=120"`
	State   string `json:"state" validate:"max=60"`
	Zip     string `json:"zip" validate:"max=20"`

	AnnualQuote    decimal.Decimal `json:"annual_quote"`
	AnnualCredited decimal.Decimal `json:"annual_credited"`
}

type UpdatePropertyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=300"`
	City    string `json:"city" validate:"max=120"`
	State   string `json:"state" validate:"max=60"`
	Zip     string `json:"zip" validate:"max=20"`
}

// UpdatePropertyFinancialsRequest sets the revenue figures tracked per
// property.
type UpdatePropertyFinancialsRequest struct {
	AnnualQuote    decimal.Decimal `json:"annual_quote"`
	AnnualCredited decimal.Decimal `json:"annual_credited"`
}

// PropertyDetailResponse is a property plus its configured services, as
// served to both admins and the mapped owner.
type PropertyDetailResponse struct {
	Property models.Property           `json:"property"`
	Services []*models.PropertyService `json:"services"`
}

// OwnerSummaryResponse backs the owner dashboard header. TotalServices
// counts visits per year, not service rows.
type OwnerSummaryResponse struct {
	PropertyName    string          `json:"property_name"`
	TotalServices   int             `json:"total_services"`
	TotalAnnualCost decimal.Decimal `json:"total_annual_cost"`
}
