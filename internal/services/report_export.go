package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
)

/* ------------------------------------------------------------------
   XLSX export

   Workbooks are built in memory and handed to the controller, which
   streams them as a download. Money cells are written as numbers;
   blank cells stand in for values that do not apply.
------------------------------------------------------------------ */

// PropertyWorkbook renders the per-property report as an XLSX file
// with a Summary and a Services sheet. The second return value is the
// suggested download file name.
func (s *ReportService) PropertyWorkbook(ctx context.Context, propertyID uuid.UUID) (*excelize.File, string, error) {
	report, err := s.PropertyReport(ctx, propertyID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, "Summary"); err != nil {
		return nil, "", err
	}
	prop := report.Property
	if err := writeSheet(f, "Summary",
		[]string{"Property ID", "Property Name", "Address", "City", "State", "ZIP",
			"Total Services (No. of Times)", "Total Annual Cost"},
		[][]any{{
			prop.ID.String(), prop.Name, prop.Address, prop.City, prop.State, prop.Zip,
			report.TotalServices, report.TotalAnnualCost.InexactFloat64(),
		}},
	); err != nil {
		return nil, "", err
	}

	svcRows := make([][]any, 0, len(report.Services))
	for _, line := range report.Services {
		svcRows = append(svcRows, []any{
			line.Category, line.Frequency, line.TimesPerYear,
			line.EachTimeCost.InexactFloat64(), line.Status,
			strOrBlank(line.StartDate), strOrBlank(line.EndDate),
			line.TotalCost.InexactFloat64(),
		})
	}
	if err := addSheet(f, "Services",
		[]string{"Category", "Frequency", "No. of Times", "Each Time Cost",
			"Status", "Start Date", "End Date", "Total Cost"},
		svcRows,
	); err != nil {
		return nil, "", err
	}

	return f, exportFileName(prop.Name) + "_landscaping.xlsx", nil
}

// ConsolidatedWorkbook renders the portfolio report: property summary
// with credited margin/ROI, all services, owners, and tickets.
func (s *ReportService) ConsolidatedWorkbook(ctx context.Context) (*excelize.File, string, error) {
	report, err := s.ConsolidatedReport(ctx)
	if err != nil {
		return nil, "", err
	}
	services, err := s.serviceRepo.ListAllWithProperty(ctx)
	if err != nil {
		return nil, "", err
	}
	owners, err := s.userRepo.ListByRole(ctx, constants.RoleOwner)
	if err != nil {
		return nil, "", err
	}
	tickets, err := s.ticketRepo.ListAll(ctx, "")
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, "Property Summary"); err != nil {
		return nil, "", err
	}
	propRows := make([][]any, 0, len(report.Properties))
	for _, row := range report.Properties {
		propRows = append(propRows, []any{
			row.PropertyID.String(), row.PropertyName,
			row.TotalServices, row.TotalAnnualCost.InexactFloat64(),
			row.AnnualQuotedRevenue.InexactFloat64(), row.AnnualCreditedRevenue.InexactFloat64(),
			row.CreditedMargin.InexactFloat64(), pctOrBlank(row.CreditedROIPct),
		})
	}
	if err := writeSheet(f, "Property Summary",
		[]string{"Property ID", "Property Name", "Total Services (No. of Times)",
			"Total Annual Cost", "Annual Quoted Revenue", "Annual Credited Revenue",
			"Credited Margin", "Credited ROI %"},
		propRows,
	); err != nil {
		return nil, "", err
	}

	svcRows := make([][]any, 0, len(services))
	for _, svc := range services {
		svcRows = append(svcRows, []any{
			svc.PropertyName, svc.Category, svc.Frequency, svc.TimesPerYear,
			svc.EachTimeCost.InexactFloat64(), svc.Status,
			svc.TotalAnnualCost().InexactFloat64(),
		})
	}
	if err := addSheet(f, "Services",
		[]string{"Property Name", "Category", "Frequency", "No. of Times",
			"Each Time Cost", "Status", "Total Cost"},
		svcRows,
	); err != nil {
		return nil, "", err
	}

	ownerRows := make([][]any, 0, len(owners))
	for _, u := range owners {
		ownerRows = append(ownerRows, []any{
			u.Username, u.FullName, u.Email, u.Phone, u.Role, u.PropertyName,
		})
	}
	if err := addSheet(f, "Owners",
		[]string{"Username", "Full Name", "Email", "Phone", "Role", "Property Name"},
		ownerRows,
	); err != nil {
		return nil, "", err
	}

	ticketRows := make([][]any, 0, len(tickets))
	for _, tk := range tickets {
		ticketRows = append(ticketRows, []any{
			tk.ID.String(), tk.Title, tk.Description, tk.Status,
			tk.CreatedAt.Format(time.RFC3339), tk.UpdatedAt.Format(time.RFC3339),
			tk.AdminComment, tk.PropertyName, tk.OwnerUsername,
		})
	}
	if err := addSheet(f, "Tickets",
		[]string{"Ticket ID", "Title", "Description", "Status", "Created At",
			"Updated At", "Admin Comment", "Property Name", "Owner Username"},
		ticketRows,
	); err != nil {
		return nil, "", err
	}

	return f, "landscaping_consolidated_report.xlsx", nil
}

// PropertyFulfilmentWorkbook renders per-service fulfilment for one
// property and year on a single Fulfilment sheet.
func (s *ReportService) PropertyFulfilmentWorkbook(ctx context.Context, propertyID uuid.UUID, year int) (*excelize.File, string, error) {
	rows, err := s.PropertyFulfilment(ctx, propertyID, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, "Fulfilment"); err != nil {
		return nil, "", err
	}
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.Category, r.Frequency, r.Planned, r.Completed, r.Pending,
			pctOrBlank(r.CompletionPct), r.Status,
		})
	}
	if err := writeSheet(f, "Fulfilment",
		[]string{"Service", "Frequency", "Planned Times / Year", "Completed (YTD)",
			"Pending (YTD)", "Completion %", "Status"},
		data,
	); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("property_%s_fulfilment_%d.xlsx", propertyID, year)
	return f, name, nil
}

// PortfolioFulfilmentWorkbook renders the portfolio rollup for a year.
func (s *ReportService) PortfolioFulfilmentWorkbook(ctx context.Context, year int) (*excelize.File, string, error) {
	rows, err := s.PortfolioFulfilment(ctx, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, "Portfolio Fulfilment"); err != nil {
		return nil, "", err
	}
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.PropertyName, r.Planned, r.Completed, r.Pending,
			pctOrBlank(r.CompletionPct), r.Status,
		})
	}
	if err := writeSheet(f, "Portfolio Fulfilment",
		[]string{"Property", "Planned Visits (Year)", "Completed Visits (YTD)",
			"Pending Visits (YTD)", "Completion %", "Status"},
		data,
	); err != nil {
		return nil, "", err
	}

	return f, fmt.Sprintf("portfolio_fulfilment_%d.xlsx", year), nil
}

/* ------------------------------------------------------------------
   Sheet helpers
------------------------------------------------------------------ */

// defaultSheet is the sheet excelize creates in every new workbook.
const defaultSheet = "Sheet1"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func addSheet(f *excelize.File, name string, header []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeSheet(f, name, header, rows)
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	headerVals := make([]any, len(header))
	for i, h := range header {
		headerVals[i] = h
	}
	if err := writeRow(f, sheet, 1, headerVals); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []any) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// exportFileName mirrors how download names are derived from property
// names: spaces and slashes become underscores.
func exportFileName(propertyName string) string {
	name := strings.ReplaceAll(propertyName, " ", "_")
	return strings.ReplaceAll(name, "/", "_")
}

func strOrBlank(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func pctOrBlank(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}
