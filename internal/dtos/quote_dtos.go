package dtos

import (
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

/*
QuoteLineInput is one service row of a quote request. Category is the
catalog display name. Excluded lines are kept on the saved quote for
the record but contribute nothing to totals.
*/
type QuoteLineInput struct {
	Category      string          `json:"category" validate:"required,max=120"`
	TimesPerYear  int             `json:"times_per_year" validate:"min=0"`
	PricePerVisit decimal.Decimal `json:"price_per_visit"`
	Included      bool            `json:"included"`
}

type ComputeQuoteRequest struct {
	Lines []QuoteLineInput `json:"lines" validate:"required,min=1,dive"`
}

type QuoteTotalsDTO struct {
	AnnualTotal   decimal.Decimal `json:"annual_total"`
	MonthlyTotal  decimal.Decimal `json:"monthly_total"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
}

type ComputeQuoteResponse struct {
	Lines  []models.QuoteLineItem `json:"lines"`
	Totals QuoteTotalsDTO         `json:"totals"`
}

type SaveQuoteRequest struct {
	CustomerName  string           `json:"customer_name" validate:"max=120"`
	CustomerEmail string           `json:"customer_email" validate:"omitempty,email"`
	PropertyName  string           `json:"property_name" validate:"max=200"`
	RegionLabel   string           `json:"region_label" validate:"required,max=200"`
	SizeBand      string           `json:"size_band" validate:"max=60"`
	Sqft          int              `json:"sqft" validate:"min=0"`
	Notes         string           `json:"notes" validate:"max=2000"`
	Lines         []QuoteLineInput `json:"lines" validate:"required,min=1,dive"`
}

// QuoteConfigResponse carries the reference data the quote builder
// needs up front: selectable regions and the service catalog.
type QuoteConfigResponse struct {
	Regions []*models.Region             `json:"regions"`
	Catalog []*models.ServiceCatalogItem `json:"catalog"`
}

/*
SuggestedQuoteLinesResponse is the standard package for a region:
one prefilled line per catalog service, priced from the region rate
table for the given square footage.
*/
type SuggestedQuoteLinesResponse struct {
	RegionLabel string                 `json:"region_label"`
	Lines       []models.QuoteLineItem `json:"lines"`
}

type ConvertQuoteResponse struct {
	Property        models.Property `json:"property"`
	ServicesCreated int             `json:"services_created"`
}

// QuoteEmailResponse reports the outcome of sending a saved quote.
type QuoteEmailResponse struct {
	Result string `json:"result"`
}
