package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/*
ReportService aggregates repository data into the property,
consolidated, fulfilment, and dashboard reports. All money math is
done in decimals; percentages are rounded for presentation.
*/
type ReportService struct {
	propertyRepo  repositories.PropertyRepository
	serviceRepo   repositories.PropertyServiceRepository
	userRepo      repositories.UserRepository
	ticketRepo    repositories.TicketRepository
	eventRepo     repositories.ServiceEventRepository
	personnelRepo repositories.ServicePersonRepository
	priceRepo     repositories.PriceMasterRepository
}

func NewReportService(
	propertyRepo repositories.PropertyRepository,
	serviceRepo repositories.PropertyServiceRepository,
	userRepo repositories.UserRepository,
	ticketRepo repositories.TicketRepository,
	eventRepo repositories.ServiceEventRepository,
	personnelRepo repositories.ServicePersonRepository,
	priceRepo repositories.PriceMasterRepository,
) *ReportService {
	return &ReportService{
		propertyRepo:  propertyRepo,
		serviceRepo:   serviceRepo,
		userRepo:      userRepo,
		ticketRepo:    ticketRepo,
		eventRepo:     eventRepo,
		personnelRepo: personnelRepo,
		priceRepo:     priceRepo,
	}
}

/* ------------------------------------------------------------------
   Property + consolidated reports
------------------------------------------------------------------ */

func (s *ReportService) PropertyReport(ctx context.Context, propertyID uuid.UUID) (*dtos.PropertyReportResponse, error) {
	prop, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}

	services, err := s.serviceRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	visits, totalCost := summarizeServices(services)
	resp := &dtos.PropertyReportResponse{
		Property:        *prop,
		TotalServices:   visits,
		TotalAnnualCost: totalCost,
		Services:        make([]dtos.ServiceLineDTO, 0, len(services)),
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, serviceLine(svc))
	}
	return resp, nil
}

func (s *ReportService) ConsolidatedReport(ctx context.Context) (*dtos.ConsolidatedReportResponse, error) {
	props, err := s.propertyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	owners, err := s.userRepo.ListByRole(ctx, constants.RoleOwner)
	if err != nil {
		return nil, err
	}

	resp := &dtos.ConsolidatedReportResponse{
		Properties: make([]dtos.PropertySummaryDTO, 0, len(props)),
	}
	totals := dtos.PortfolioTotalsDTO{
		Properties: len(props),
		Owners:     len(owners),
	}

	for _, prop := range props {
		services, err := s.serviceRepo.ListByPropertyID(ctx, prop.ID)
		if err != nil {
			return nil, err
		}
		visits, cost := summarizeServices(services)

		row := dtos.PropertySummaryDTO{
			PropertyID:            prop.ID,
			PropertyName:          prop.Name,
			TotalServices:         visits,
			TotalAnnualCost:       cost,
			AnnualQuotedRevenue:   prop.AnnualQuote,
			AnnualCreditedRevenue: prop.AnnualCredited,
			CreditedMargin:        prop.AnnualCredited.Sub(cost),
		}
		if cost.IsPositive() {
			roi := row.CreditedMargin.Div(cost).Mul(decimal.NewFromInt(100)).Round(2)
			row.CreditedROIPct = &roi
		}
		resp.Properties = append(resp.Properties, row)

		totals.TotalServices += visits
		totals.TotalAnnualCost = totals.TotalAnnualCost.Add(cost)
		totals.TotalQuotedRevenue = totals.TotalQuotedRevenue.Add(prop.AnnualQuote)
		totals.TotalCreditedRevenue = totals.TotalCreditedRevenue.Add(prop.AnnualCredited)
	}
	totals.CreditedMargin = totals.TotalCreditedRevenue.Sub(totals.TotalAnnualCost)

	resp.Totals = totals
	return resp, nil
}

/* ------------------------------------------------------------------
   Fulfilment analysis
------------------------------------------------------------------ */

func (s *ReportService) PropertyFulfilment(ctx context.Context, propertyID uuid.UUID, year int) ([]dtos.ServiceFulfilmentDTO, error) {
	prop, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrNotFound
	}
	return s.serviceFulfilment(ctx, propertyID, year)
}

func (s *ReportService) serviceFulfilment(ctx context.Context, propertyID uuid.UUID, year int) ([]dtos.ServiceFulfilmentDTO, error) {
	services, err := s.serviceRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	yr := strconv.Itoa(year)
	out := make([]dtos.ServiceFulfilmentDTO, 0, len(services))
	for _, svc := range services {
		completed, scheduled, err := s.eventRepo.FulfilmentCountsForYear(ctx, svc.ID, yr)
		if err != nil {
			return nil, err
		}
		planned := svc.TimesPerYear
		pending := planned - completed
		if pending < 0 {
			pending = 0
		}

		row := dtos.ServiceFulfilmentDTO{
			ServiceID: svc.ID,
			Category:  svc.Category,
			Frequency: svc.Frequency,
			Planned:   planned,
			Completed: completed,
			Pending:   pending,
			Scheduled: scheduled,
			Status:    FulfilmentLabel(planned, completed),
		}
		if planned > 0 {
			pct := completionPct(planned, completed)
			row.CompletionPct = &pct
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *ReportService) PortfolioFulfilment(ctx context.Context, year int) ([]dtos.PropertyFulfilmentDTO, error) {
	props, err := s.propertyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.PropertyFulfilmentDTO, 0, len(props))
	for _, prop := range props {
		rows, err := s.serviceFulfilment(ctx, prop.ID, year)
		if err != nil {
			return nil, err
		}

		var planned, completed int
		for _, r := range rows {
			planned += r.Planned
			completed += r.Completed
		}
		pending := planned - completed
		if pending < 0 {
			pending = 0
		}

		row := dtos.PropertyFulfilmentDTO{
			PropertyID:   prop.ID,
			PropertyName: prop.Name,
			Planned:      planned,
			Completed:    completed,
			Pending:      pending,
			Status:       FulfilmentLabel(planned, completed),
		}
		if planned > 0 {
			pct := completionPct(planned, completed)
			row.CompletionPct = &pct
		}
		out = append(out, row)
	}
	return out, nil
}

/* ------------------------------------------------------------------
   Dashboard metrics
------------------------------------------------------------------ */

func (s *ReportService) DashboardMetrics(ctx context.Context) (*dtos.DashboardMetricsResponse, error) {
	consolidated, err := s.ConsolidatedReport(ctx)
	if err != nil {
		return nil, err
	}

	openTickets, err := s.ticketRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format(constants.DateLayout)
	overdue, err := s.eventRepo.CountOverdue(ctx, today)
	if err != nil {
		return nil, err
	}
	activeStaff, err := s.personnelRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	priceEntries, err := s.priceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	freq, err := s.serviceRepo.FrequencySummary(ctx)
	if err != nil {
		return nil, err
	}

	t := consolidated.Totals
	return &dtos.DashboardMetricsResponse{
		TotalProperties:      t.Properties,
		TotalOwners:          t.Owners,
		TotalServices:        t.TotalServices,
		TotalAnnualCost:      t.TotalAnnualCost,
		TotalQuotedRevenue:   t.TotalQuotedRevenue,
		TotalCreditedRevenue: t.TotalCreditedRevenue,
		PortfolioMargin:      t.CreditedMargin,
		OpenTickets:          openTickets,
		OverdueEvents:        overdue,
		ActiveStaff:          activeStaff,
		PriceEntries:         priceEntries,
		FrequencySummary:     freq,
	}, nil
}

/* ------------------------------------------------------------------
   Row builders
------------------------------------------------------------------ */

func serviceLine(svc *models.PropertyService) dtos.ServiceLineDTO {
	return dtos.ServiceLineDTO{
		ServiceID:    svc.ID,
		PropertyName: svc.PropertyName,
		Category:     svc.Category,
		Frequency:    svc.Frequency,
		TimesPerYear: svc.TimesPerYear,
		EachTimeCost: svc.EachTimeCost,
		Status:       svc.Status,
		StartDate:    svc.StartDate,
		EndDate:      svc.EndDate,
		TotalCost:    svc.TotalAnnualCost(),
	}
}

func completionPct(planned, completed int) decimal.Decimal {
	return decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(planned))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}
