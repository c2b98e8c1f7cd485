package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func TestReportServicePropertyReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	prop := seedTestProperty(t, env, "Green Acres")
	seedTestService(t, env, prop.ID, "Mowing", 22, "50")
	seedTestService(t, env, prop.ID, "Mulching", 2, "350")

	report, err := svc.PropertyReport(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, "Green Acres", report.Property.Name)
	require.Equal(t, 24, report.TotalServices)
	require.True(t, report.TotalAnnualCost.Equal(decimal.NewFromInt(1800)))
	require.Len(t, report.Services, 2)
	for _, line := range report.Services {
		if line.Category == "Mowing" {
			require.Equal(t, "Weekly (22 visits)", line.Frequency)
			require.True(t, line.TotalCost.Equal(decimal.NewFromInt(1100)))
		}
	}

	_, err = svc.PropertyReport(ctx, uuid.New())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestReportServiceConsolidatedReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	withServices := seedTestProperty(t, env, "Green Acres")
	seedTestService(t, env, withServices.ID, "Mowing", 22, "50")
	seedTestService(t, env, withServices.ID, "Mulching", 2, "350")
	require.NoError(t, env.props.UpdateFinancials(ctx, withServices.ID,
		decimal.RequireFromString("2340"), decimal.RequireFromString("2223")))

	empty := seedTestProperty(t, env, "Bare Lot")
	require.NoError(t, env.props.UpdateFinancials(ctx, empty.ID,
		decimal.Zero, decimal.RequireFromString("500")))

	seedTestOwner(t, env, "owner1", &withServices.ID, "o1@example.com", "+15125550101")

	report, err := svc.ConsolidatedReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Properties, 2)

	byName := map[string]int{}
	for i, row := range report.Properties {
		byName[row.PropertyName] = i
	}

	green := report.Properties[byName["Green Acres"]]
	require.Equal(t, 24, green.TotalServices)
	require.True(t, green.TotalAnnualCost.Equal(decimal.NewFromInt(1800)))
	require.True(t, green.CreditedMargin.Equal(decimal.NewFromInt(423)))
	require.NotNil(t, green.CreditedROIPct)
	require.True(t, green.CreditedROIPct.Equal(decimal.RequireFromString("23.5")))

	bare := report.Properties[byName["Bare Lot"]]
	require.Equal(t, 0, bare.TotalServices)
	require.True(t, bare.CreditedMargin.Equal(decimal.NewFromInt(500)))
	require.Nil(t, bare.CreditedROIPct)

	totals := report.Totals
	require.Equal(t, 2, totals.Properties)
	require.Equal(t, 1, totals.Owners)
	require.Equal(t, 24, totals.TotalServices)
	require.True(t, totals.TotalAnnualCost.Equal(decimal.NewFromInt(1800)))
	require.True(t, totals.TotalQuotedRevenue.Equal(decimal.NewFromInt(2340)))
	require.True(t, totals.TotalCreditedRevenue.Equal(decimal.NewFromInt(2723)))
	require.True(t, totals.CreditedMargin.Equal(decimal.NewFromInt(923)))
}

func TestReportServiceFulfilment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	prop := seedTestProperty(t, env, "Event Gardens")
	trimming := seedTestService(t, env, prop.ID, "Tree Trimming", 4, "120")
	idle := seedTestService(t, env, prop.ID, "Aeration", 0, "90")

	mkEvent := func(date, status string) {
		e := &models.ServiceEvent{
			ID: uuid.New(), PropertyID: prop.ID, ServiceID: &trimming.ID,
			ServiceCategory: "Tree Trimming", ScheduledDate: date, Status: status,
		}
		require.NoError(t, env.events.Create(ctx, e))
	}
	mkEvent("2026-02-10", constants.EventStatusCompleted)
	mkEvent("2026-05-14", constants.EventStatusCompleted)
	mkEvent("2026-08-20", constants.EventStatusScheduled)
	mkEvent("2025-09-01", constants.EventStatusCompleted)

	rows, err := svc.PropertyFulfilment(ctx, prop.ID, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byService := map[uuid.UUID]int{}
	for i, r := range rows {
		byService[r.ServiceID] = i
	}

	tr := rows[byService[trimming.ID]]
	require.Equal(t, 4, tr.Planned)
	require.Equal(t, 2, tr.Completed)
	require.Equal(t, 2, tr.Pending)
	require.Equal(t, 1, tr.Scheduled)
	require.NotNil(t, tr.CompletionPct)
	require.True(t, tr.CompletionPct.Equal(decimal.NewFromInt(50)))
	require.Equal(t, constants.FulfilmentInProgress, tr.Status)

	ae := rows[byService[idle.ID]]
	require.Equal(t, constants.FulfilmentNotConfigured, ae.Status)
	require.Nil(t, ae.CompletionPct)

	_, err = svc.PropertyFulfilment(ctx, uuid.New(), 2026)
	require.ErrorIs(t, err, utils.ErrNotFound)

	portfolio, err := svc.PortfolioFulfilment(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, portfolio, 1)
	require.Equal(t, "Event Gardens", portfolio[0].PropertyName)
	require.Equal(t, 4, portfolio[0].Planned)
	require.Equal(t, 2, portfolio[0].Completed)
	require.Equal(t, constants.FulfilmentInProgress, portfolio[0].Status)
}

func TestReportServiceDashboardMetrics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	prop := seedTestProperty(t, env, "Metrics Manor")
	seedTestService(t, env, prop.ID, "Mowing", 22, "50")
	owner := seedTestOwner(t, env, "owner1", &prop.ID, "o1@example.com", "+15125550101")

	require.NoError(t, env.tickets.Create(ctx, &models.Ticket{
		ID: uuid.New(), PropertyID: prop.ID, OwnerID: owner.ID,
		Title: "Hedge overgrown", Description: "Front hedge needs a trim",
		Status: constants.TicketStatusOpen, Priority: constants.TicketPriorityMedium,
	}))
	require.NoError(t, env.events.Create(ctx, &models.ServiceEvent{
		ID: uuid.New(), PropertyID: prop.ID,
		ServiceCategory: "Mowing", ScheduledDate: "2001-01-05",
		Status: constants.EventStatusScheduled,
	}))
	require.NoError(t, env.personnel.Create(ctx, &models.ServicePerson{
		ID: uuid.New(), FullName: "Casey Crew", RoleTitle: "Crew Lead", IsActive: true,
	}))
	require.NoError(t, env.prices.Create(ctx, &models.PriceMasterRow{
		ID: uuid.New(), Region: "TX", Category: "Mowing",
		Frequency: "Weekly (22 visits)", TimesPerYear: 22,
		SuggestedRate: decimal.NewFromInt(55),
	}))

	m, err := svc.DashboardMetrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, m.TotalProperties)
	require.Equal(t, 1, m.TotalOwners)
	require.Equal(t, 22, m.TotalServices)
	require.True(t, m.TotalAnnualCost.Equal(decimal.NewFromInt(1100)))
	require.Equal(t, 1, m.OpenTickets)
	require.Equal(t, 1, m.OverdueEvents)
	require.Equal(t, 1, m.ActiveStaff)
	require.Equal(t, 1, m.PriceEntries)
	require.Equal(t, []models.FrequencyCount{{Frequency: "Weekly (22 visits)", Count: 22}}, m.FrequencySummary)
}

func TestReportServicePropertyWorkbook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	prop := seedTestProperty(t, env, "Green Acres")
	seedTestService(t, env, prop.ID, "Mowing", 22, "50")

	f, name, err := svc.PropertyWorkbook(ctx, prop.ID)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, "Green_Acres_landscaping.xlsx", name)

	v, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	require.Equal(t, "Green Acres", v)
	v, err = f.GetCellValue("Summary", "H2")
	require.NoError(t, err)
	require.Equal(t, "1100", v)

	v, err = f.GetCellValue("Services", "A1")
	require.NoError(t, err)
	require.Equal(t, "Category", v)
	v, err = f.GetCellValue("Services", "A2")
	require.NoError(t, err)
	require.Equal(t, "Mowing", v)
}

func TestReportServiceConsolidatedWorkbook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	prop := seedTestProperty(t, env, "Green Acres")
	seedTestService(t, env, prop.ID, "Mowing", 22, "50")
	seedTestOwner(t, env, "owner1", &prop.ID, "o1@example.com", "+15125550101")

	f, name, err := svc.ConsolidatedWorkbook(ctx)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, "landscaping_consolidated_report.xlsx", name)

	for _, sheet := range []string{"Property Summary", "Services", "Owners", "Tickets"} {
		idx, err := f.GetSheetIndex(sheet)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0, "missing sheet %s", sheet)
	}

	v, err := f.GetCellValue("Owners", "A2")
	require.NoError(t, err)
	require.Equal(t, "owner1", v)
	v, err = f.GetCellValue("Owners", "F2")
	require.NoError(t, err)
	require.Equal(t, "Green Acres", v)
}

func TestReportServiceFulfilmentWorkbooks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.reportService()

	prop := seedTestProperty(t, env, "Event Gardens")
	seedTestService(t, env, prop.ID, "Mowing", 4, "60")

	f, name, err := svc.PropertyFulfilmentWorkbook(ctx, prop.ID, 2026)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, "property_"+prop.ID.String()+"_fulfilment_2026.xlsx", name)
	v, err := f.GetCellValue("Fulfilment", "A2")
	require.NoError(t, err)
	require.Equal(t, "Mowing", v)

	pf, pname, err := svc.PortfolioFulfilmentWorkbook(ctx, 2026)
	require.NoError(t, err)
	defer pf.Close()
	require.Equal(t, "portfolio_fulfilment_2026.xlsx", pname)
	v, err = pf.GetCellValue("Portfolio Fulfilment", "F2")
	require.NoError(t, err)
	require.Equal(t, constants.FulfilmentNotStarted, v)
}
