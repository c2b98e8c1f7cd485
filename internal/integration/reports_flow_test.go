package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/routes"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func TestPropertyReport(t *testing.T) {
	propID := propertyIDByName(t, "Maple Heights")

	resp, data := doRequest(t, http.MethodGet,
		"/api/v1/admin/reports/properties/"+propID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report dtos.PropertyReportResponse
	decodeInto(t, data, &report)
	require.Equal(t, "Maple Heights", report.Property.Name)
	require.Equal(t, 56, report.TotalServices)
	requireAmount(t, "3745", report.TotalAnnualCost)
	require.Len(t, report.Services, 6)

	for _, line := range report.Services {
		switch line.Category {
		case "Mowing":
			requireAmount(t, "1320", line.TotalCost)
		case "Weed Control Spraying":
			requireAmount(t, "255", line.TotalCost)
		case "Mulch":
			requireAmount(t, "1200", line.TotalCost)
		}
	}
}

func TestConsolidatedReport(t *testing.T) {
	resp, data := doRequest(t, http.MethodGet, routes.AdminReportConsolidated, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report dtos.ConsolidatedReportResponse
	decodeInto(t, data, &report)
	require.Len(t, report.Properties, 10)

	// Every demo property carries the same standard package
	for _, row := range report.Properties {
		require.Equal(t, 56, row.TotalServices)
		requireAmount(t, "3745", row.TotalAnnualCost)
		requireAmount(t, "4868.50", row.AnnualQuotedRevenue)
		requireAmount(t, "4625.08", row.AnnualCreditedRevenue)
		requireAmount(t, "880.08", row.CreditedMargin)
		require.NotNil(t, row.CreditedROIPct)
		requireAmount(t, "23.5", *row.CreditedROIPct)
	}

	totals := report.Totals
	require.Equal(t, 10, totals.Properties)
	require.Equal(t, 10, totals.Owners)
	require.Equal(t, 560, totals.TotalServices)
	requireAmount(t, "37450", totals.TotalAnnualCost)
	requireAmount(t, "48685", totals.TotalQuotedRevenue)
	requireAmount(t, "46250.80", totals.TotalCreditedRevenue)
	requireAmount(t, "8800.80", totals.CreditedMargin)
}

func TestDashboardMetrics(t *testing.T) {
	resp, data := doRequest(t, http.MethodGet, routes.AdminDashboardMetrics, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m dtos.DashboardMetricsResponse
	decodeInto(t, data, &m)
	require.Equal(t, 10, m.TotalProperties)
	require.Equal(t, 10, m.TotalOwners)
	require.Equal(t, 560, m.TotalServices)
	requireAmount(t, "37450", m.TotalAnnualCost)
	requireAmount(t, "46250.80", m.TotalCreditedRevenue)
	requireAmount(t, "8800.80", m.PortfolioMargin)
	require.Equal(t, 2, m.OpenTickets)
	require.Equal(t, 3, m.ActiveStaff)
	require.Equal(t, 6, m.PriceEntries)

	// The seeded May visits count as overdue only once their date has
	// passed; mirror the same day comparison the counter uses.
	today := time.Now().Format(constants.DateLayout)
	mayVisit := fmt.Sprintf("%d-05-01", time.Now().Year())
	wantOverdue := 0
	if mayVisit < today {
		wantOverdue = 10
	}
	require.Equal(t, wantOverdue, m.OverdueEvents)

	// Visits grouped by frequency label, largest first
	require.Len(t, m.FrequencySummary, 5)
	require.Equal(t, models.FrequencyCount{Frequency: "Weekly (22 Visits)", Count: 440}, m.FrequencySummary[0])
}

func TestFulfilmentReports(t *testing.T) {
	propID := propertyIDByName(t, "Oakridge Villas")
	year := time.Now().Year()

	t.Run("per service", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/admin/reports/properties/%s/fulfilment?year=%d", propID, year)
		resp, data := doRequest(t, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rows []dtos.ServiceFulfilmentDTO
		decodeInto(t, data, &rows)
		require.Len(t, rows, 6)

		for _, row := range rows {
			if row.Category == "Mowing" {
				require.Equal(t, 22, row.Planned)
				require.Equal(t, 3, row.Completed)
				require.Equal(t, 19, row.Pending)
				require.Equal(t, 1, row.Scheduled)
				require.Equal(t, constants.FulfilmentInProgress, row.Status)
				require.NotNil(t, row.CompletionPct)
				requireAmount(t, "13.6", *row.CompletionPct)
			} else {
				require.Equal(t, 0, row.Completed)
				require.Equal(t, constants.FulfilmentNotStarted, row.Status)
			}
		}
	})

	t.Run("portfolio rollup", func(t *testing.T) {
		path := fmt.Sprintf("%s?year=%d", routes.AdminReportPortfolioFulfilment, year)
		resp, data := doRequest(t, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rows []dtos.PropertyFulfilmentDTO
		decodeInto(t, data, &rows)
		require.Len(t, rows, 10)
		for _, row := range rows {
			require.Equal(t, 56, row.Planned)
			require.Equal(t, 3, row.Completed)
			require.Equal(t, 53, row.Pending)
			require.Equal(t, constants.FulfilmentInProgress, row.Status)
			require.NotNil(t, row.CompletionPct)
			requireAmount(t, "5.4", *row.CompletionPct)
		}
	})

	t.Run("the year defaults to the current one", func(t *testing.T) {
		resp, data := doRequest(t, http.MethodGet, routes.AdminReportPortfolioFulfilment, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rows []dtos.PropertyFulfilmentDTO
		decodeInto(t, data, &rows)
		require.Len(t, rows, 10)
		require.Equal(t, 3, rows[0].Completed)
	})

	t.Run("a different year has no completions", func(t *testing.T) {
		path := fmt.Sprintf("%s?year=%d", routes.AdminReportPortfolioFulfilment, year-1)
		resp, data := doRequest(t, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rows []dtos.PropertyFulfilmentDTO
		decodeInto(t, data, &rows)
		for _, row := range rows {
			require.Equal(t, 0, row.Completed)
		}
	})

	t.Run("year must be numeric", func(t *testing.T) {
		resp, data := doRequest(t, http.MethodGet,
			routes.AdminReportPortfolioFulfilment+"?year=spring", adminToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, utils.ErrCodeValidation, errorCode(t, data))
	})
}

func TestReportExports(t *testing.T) {
	propID := propertyIDByName(t, "Maple Heights")
	const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	check := func(t *testing.T, path, wantName string) {
		resp, data := doRequest(t, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, xlsxMime, resp.Header.Get("Content-Type"))
		require.Contains(t, resp.Header.Get("Content-Disposition"), wantName)
		require.True(t, strings.HasPrefix(string(data), "PK"), "workbook should be a zip container")
	}

	t.Run("property report", func(t *testing.T) {
		check(t, "/api/v1/admin/reports/properties/"+propID.String()+"/export",
			"Maple_Heights_landscaping.xlsx")
	})

	t.Run("consolidated report", func(t *testing.T) {
		check(t, routes.AdminReportConsolidatedExport, "landscaping_consolidated_report.xlsx")
	})

	t.Run("property fulfilment", func(t *testing.T) {
		check(t, "/api/v1/admin/reports/properties/"+propID.String()+"/fulfilment/export", ".xlsx")
	})

	t.Run("portfolio fulfilment", func(t *testing.T) {
		year := time.Now().Year()
		check(t, routes.AdminReportPortfolioFulfilmentExport,
			fmt.Sprintf("portfolio_fulfilment_%d.xlsx", year))
	})
}
