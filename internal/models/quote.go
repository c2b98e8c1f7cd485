package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Region is quote-builder reference data: a serviced market with pricing
// factors, labeled "ST - City - Tier".
type Region struct {
	ID         uuid.UUID       `json:"id"`
	State      string          `json:"state"`
	City       string          `json:"city"`
	Tier       string          `json:"tier"`
	CostFactor decimal.Decimal `json:"cost_factor"`
	RateFactor decimal.Decimal `json:"rate_factor"`
}

// Label renders the canonical "ST - City - Tier" form used in quotes.
func (r *Region) Label() string {
	return r.State + " - " + r.City + " - " + r.Tier
}

// ServiceCatalogItem is a sellable service with its default visit count.
type ServiceCatalogItem struct {
	ID                  uuid.UUID `json:"id"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	DefaultTimesPerYear int       `json:"default_times_per_year"`
}

// RegionServiceRate is the suggested per-visit price for a catalog item in
// a region, valid for a square-footage band.
type RegionServiceRate struct {
	ID            uuid.UUID       `json:"id"`
	RegionID      uuid.UUID       `json:"region_id"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	MinSqft       int             `json:"min_sqft"`
	MaxSqft       int             `json:"max_sqft"`
	PricePerVisit decimal.Decimal `json:"price_per_visit"`
}

// Quote is a persisted cost estimate for a prospective customer.
type Quote struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	PropertyName  string          `json:"property_name"`
	RegionLabel   string          `json:"region_label"`
	SizeBand      string          `json:"size_band"`
	Sqft          int             `json:"sqft"`
	Notes         string          `json:"notes,omitempty"`
	Status        string          `json:"status"`
	AnnualTotal   decimal.Decimal `json:"annual_total"`
	MonthlyTotal  decimal.Decimal `json:"monthly_total"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
	CreatedAt     time.Time       `json:"created_at"`

	LineItems []QuoteLineItem `json:"line_items,omitempty"`
}

// QuoteLineItem is one service line on a quote. Excluded lines are kept
// for editing but contribute nothing to the totals.
type QuoteLineItem struct {
	ID            uuid.UUID       `json:"id"`
	QuoteID       uuid.UUID       `json:"quote_id"`
	Category      string          `json:"category"`
	Frequency     string          `json:"frequency"`
	TimesPerYear  int             `json:"times_per_year"`
	PricePerVisit decimal.Decimal `json:"price_per_visit"`
	Included      bool            `json:"included"`
	LineTotal     decimal.Decimal `json:"line_total"`
}
