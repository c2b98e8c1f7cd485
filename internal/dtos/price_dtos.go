package dtos

import "github.com/shopspring/decimal"

/*
Price master rows are region-level rate guidance. The frequency label
derives from the category and visit count when not supplied.
*/
type CreatePriceRequest struct {
	Region        string          `json:"region" validate:"required,max=60"`
	Category      string          `json:"category" validate:"required,max=120"`
	Frequency     string          `json:"frequency" validate:"max=60"`
	TimesPerYear  int             `json:"times_per_year" validate:"min=0"`
	SuggestedRate decimal.Decimal `json:"suggested_rate"`
	Notes         string          `json:"notes" validate:"max=2000"`
}

type UpdatePriceRequest struct {
	Region        string          `json:"region" validate:"required,max=60"`
	Category      string          `json:"category" validate:"required,max=120"`
	Frequency     string          `json:"frequency" validate:"max=60"`
	TimesPerYear  int             `json:"times_per_year" validate:"min=0"`
	SuggestedRate decimal.Decimal `json:"suggested_rate"`
	Notes         string          `json:"notes" validate:"max=2000"`
}
