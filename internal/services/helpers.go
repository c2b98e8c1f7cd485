package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/models"
)

// summarizeServices totals a property's plan: visit count is the sum of
// times_per_year, not the number of service rows.
func summarizeServices(svcs []*models.PropertyService) (int, decimal.Decimal) {
	visits := 0
	total := decimal.Zero
	for _, s := range svcs {
		visits += s.TimesPerYear
		total = total.Add(s.TotalAnnualCost())
	}
	return visits, total
}

// FrequencyLabel renders the display label for a category and visit count.
// Mulching is described by interval rather than count.
func FrequencyLabel(category string, timesPerYear int) string {
	if strings.Contains(strings.ToLower(category), "mulch") {
		return "Every 6 Months"
	}
	switch {
	case timesPerYear <= 0:
		return "Not configured"
	case timesPerYear == 1:
		return "Once / Year"
	case timesPerYear == 2:
		return "Twice / Year"
	case timesPerYear == 22:
		return "Weekly (22 visits)"
	default:
		return fmt.Sprintf("%d Times / Year", timesPerYear)
	}
}

// FulfilmentLabel classifies how a service's completed visits compare to
// its plan for the year.
func FulfilmentLabel(planned, completed int) string {
	switch {
	case planned <= 0:
		return constants.FulfilmentNotConfigured
	case completed >= planned:
		return constants.FulfilmentOnTrack
	case completed == 0:
		return constants.FulfilmentNotStarted
	default:
		return constants.FulfilmentInProgress
	}
}

// EventDueState derives the calendar urgency of an event. Non-scheduled
// events report their status unchanged. Dates compare lexically because
// they are YYYY-MM-DD.
func EventDueState(scheduledDate, status, today string) string {
	if status != constants.EventStatusScheduled {
		return status
	}
	switch {
	case scheduledDate < today:
		return constants.EventDueStateOverdue
	case scheduledDate == today:
		return constants.EventDueStateDueToday
	default:
		return constants.EventDueStateUpcoming
	}
}
