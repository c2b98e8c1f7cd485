package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

/*
ServiceLineDTO is one service row inside a property or consolidated
report. TotalCost is times/year x cost/visit, computed server side.
*/
type ServiceLineDTO struct {
	ServiceID    uuid.UUID       `json:"service_id"`
	PropertyName string          `json:"property_name,omitempty"`
	Category     string          `json:"category"`
	Frequency    string          `json:"frequency"`
	TimesPerYear int             `json:"times_per_year"`
	EachTimeCost decimal.Decimal `json:"each_time_cost"`
	Status       string          `json:"status"`
	StartDate    *string         `json:"start_date,omitempty"`
	EndDate      *string         `json:"end_date,omitempty"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

/*
PropertyReportResponse is the per-property report: the property, its
summary totals, and one line per configured service.
*/
type PropertyReportResponse struct {
	Property        models.Property  `json:"property"`
	TotalServices   int              `json:"total_services"`
	TotalAnnualCost decimal.Decimal  `json:"total_annual_cost"`
	Services        []ServiceLineDTO `json:"services"`
}

/*
PropertySummaryDTO is one portfolio row of the consolidated report.
TotalServices counts visits (sum of times/year), not service rows.
CreditedROIPct is omitted when the property has no annual cost.
*/
type PropertySummaryDTO struct {
	PropertyID            uuid.UUID        `json:"property_id"`
	PropertyName          string           `json:"property_name"`
	TotalServices         int              `json:"total_services"`
	TotalAnnualCost       decimal.Decimal  `json:"total_annual_cost"`
	AnnualQuotedRevenue   decimal.Decimal  `json:"annual_quoted_revenue"`
	AnnualCreditedRevenue decimal.Decimal  `json:"annual_credited_revenue"`
	CreditedMargin        decimal.Decimal  `json:"credited_margin"`
	CreditedROIPct        *decimal.Decimal `json:"credited_roi_pct,omitempty"`
}

type PortfolioTotalsDTO struct {
	Properties           int             `json:"properties"`
	Owners               int             `json:"owners"`
	TotalServices        int             `json:"total_services"`
	TotalAnnualCost      decimal.Decimal `json:"total_annual_cost"`
	TotalQuotedRevenue   decimal.Decimal `json:"total_quoted_revenue"`
	TotalCreditedRevenue decimal.Decimal `json:"total_credited_revenue"`
	CreditedMargin       decimal.Decimal `json:"credited_margin"`
}

type ConsolidatedReportResponse struct {
	Properties []PropertySummaryDTO `json:"properties"`
	Totals     PortfolioTotalsDTO   `json:"totals"`
}

/*
ServiceFulfilmentDTO compares planned visits against completed events
for one service in a given year.
*/
type ServiceFulfilmentDTO struct {
	ServiceID     uuid.UUID        `json:"service_id"`
	Category      string           `json:"category"`
	Frequency     string           `json:"frequency"`
	Planned       int              `json:"planned"`
	Completed     int              `json:"completed"`
	Pending       int              `json:"pending"`
	Scheduled     int              `json:"scheduled"`
	CompletionPct *decimal.Decimal `json:"completion_pct,omitempty"`
	Status        string           `json:"status"`
}

// PropertyFulfilmentDTO is the portfolio-level rollup of the same stats.
type PropertyFulfilmentDTO struct {
	PropertyID    uuid.UUID        `json:"property_id"`
	PropertyName  string           `json:"property_name"`
	Planned       int              `json:"planned"`
	Completed     int              `json:"completed"`
	Pending       int              `json:"pending"`
	CompletionPct *decimal.Decimal `json:"completion_pct,omitempty"`
	Status        string           `json:"status"`
}

/*
DashboardMetricsResponse backs the admin dashboard: portfolio totals
plus operational counters and the service frequency breakdown.
*/
type DashboardMetricsResponse struct {
	TotalProperties      int             `json:"total_properties"`
	TotalOwners          int             `json:"total_owners"`
	TotalServices        int             `json:"total_services"`
	TotalAnnualCost      decimal.Decimal `json:"total_annual_cost"`
	TotalQuotedRevenue   decimal.Decimal `json:"total_quoted_revenue"`
	TotalCreditedRevenue decimal.Decimal `json:"total_credited_revenue"`
	PortfolioMargin      decimal.Decimal `json:"portfolio_margin"`

	OpenTickets   int `json:"open_tickets"`
	OverdueEvents int `json:"overdue_events"`
	ActiveStaff   int `json:"active_staff"`
	PriceEntries  int `json:"price_entries"`

	FrequencySummary []models.FrequencyCount `json:"frequency_summary"`
}
