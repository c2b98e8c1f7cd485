package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// ReportController serves the admin reporting surface: per-property and
// consolidated cost reports, fulfilment tracking and dashboard metrics,
// each available as JSON or as an XLSX download.
type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

/* ------------------------------------------------------------------
   Cost reports
------------------------------------------------------------------ */

// GET /api/v1/admin/reports/properties/{propertyID}
func (c *ReportController) PropertyReportHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	report, err := c.reports.PropertyReport(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// GET /api/v1/admin/reports/properties/{propertyID}/export
func (c *ReportController) ExportPropertyReportHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	f, filename, err := c.reports.PropertyWorkbook(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	writeWorkbook(w, f, filename)
}

// GET /api/v1/admin/reports/consolidated
func (c *ReportController) ConsolidatedReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := c.reports.ConsolidatedReport(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// GET /api/v1/admin/reports/consolidated/export
func (c *ReportController) ExportConsolidatedReportHandler(w http.ResponseWriter, r *http.Request) {
	f, filename, err := c.reports.ConsolidatedWorkbook(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	writeWorkbook(w, f, filename)
}

/* ------------------------------------------------------------------
   Fulfilment
------------------------------------------------------------------ */

// GET /api/v1/admin/reports/properties/{propertyID}/fulfilment?year=2025
func (c *ReportController) PropertyFulfilmentHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	year, err := yearParam(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	rows, err := c.reports.PropertyFulfilment(r.Context(), propertyID, year)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// GET /api/v1/admin/reports/properties/{propertyID}/fulfilment/export?year=2025
func (c *ReportController) ExportPropertyFulfilmentHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	year, err := yearParam(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	f, filename, err := c.reports.PropertyFulfilmentWorkbook(r.Context(), propertyID, year)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	writeWorkbook(w, f, filename)
}

// GET /api/v1/admin/reports/fulfilment?year=2025
func (c *ReportController) PortfolioFulfilmentHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	rows, err := c.reports.PortfolioFulfilment(r.Context(), year)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// GET /api/v1/admin/reports/fulfilment/export?year=2025
func (c *ReportController) ExportPortfolioFulfilmentHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	f, filename, err := c.reports.PortfolioFulfilmentWorkbook(r.Context(), year)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	writeWorkbook(w, f, filename)
}

/* ------------------------------------------------------------------
   Dashboard
------------------------------------------------------------------ */

// GET /api/v1/admin/dashboard/metrics
func (c *ReportController) DashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := c.reports.DashboardMetrics(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, metrics)
}

// yearParam reads an optional ?year= query parameter, defaulting to the
// current year.
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    `Query parameter "year" must be a valid year`,
			Err:        err,
		}
	}
	return year, nil
}
