package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceMasterRow is read-mostly reference data: the suggested rate for a
// service category in a region, at a standard frequency.
type PriceMasterRow struct {
	ID            uuid.UUID       `json:"id"`
	Region        string          `json:"region"`
	Category      string          `json:"category"`
	Frequency     string          `json:"frequency"`
	TimesPerYear  int             `json:"times_per_year"`
	SuggestedRate decimal.Decimal `json:"suggested_rate"`
	Notes         string          `json:"notes,omitempty"`
}
