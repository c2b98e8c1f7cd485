package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Service
------------------------------------------------------------------ */

// QuoteService builds, prices, stores, and converts customer quotes.
type QuoteService struct {
	quoteRepo   repositories.QuoteRepository
	regionRepo  repositories.RegionRepository
	propRepo    repositories.PropertyRepository
	serviceRepo repositories.PropertyServiceRepository
	notifier    NotificationService
}

func NewQuoteService(
	quoteRepo repositories.QuoteRepository,
	regionRepo repositories.RegionRepository,
	propRepo repositories.PropertyRepository,
	serviceRepo repositories.PropertyServiceRepository,
	notifier NotificationService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		regionRepo:  regionRepo,
		propRepo:    propRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
	}
}

/* ------------------------------------------------------------------
   Reference data
------------------------------------------------------------------ */

func (s *QuoteService) Config(ctx context.Context) (*dtos.QuoteConfigResponse, error) {
	regions, err := s.regionRepo.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.regionRepo.ListCatalogItems(ctx)
	if err != nil {
		return nil, err
	}
	return &dtos.QuoteConfigResponse{Regions: regions, Catalog: catalog}, nil
}

// SuggestLines prefills one included line per catalog service, priced
// from the region's rate table for the given square footage. A service
// with no rate covering the footage keeps the catalog default visit
// count and a zero price for the admin to fill in.
func (s *QuoteService) SuggestLines(ctx context.Context, regionID uuid.UUID, sqft int) (*dtos.SuggestedQuoteLinesResponse, error) {
	region, err := s.regionRepo.GetRegionByID(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, utils.ErrNotFound
	}

	catalog, err := s.regionRepo.ListCatalogItems(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]models.QuoteLineItem, 0, len(catalog))
	for _, item := range catalog {
		price := decimal.Zero
		rate, err := s.regionRepo.FindRate(ctx, region.ID, item.ID, sqft)
		if err != nil {
			return nil, err
		}
		if rate != nil {
			price = rate.PricePerVisit
		}
		times := item.DefaultTimesPerYear
		lines = append(lines, models.QuoteLineItem{
			Category:      item.Name,
			Frequency:     FrequencyLabel(item.Name, times),
			TimesPerYear:  times,
			PricePerVisit: price,
			Included:      true,
			LineTotal:     price.Mul(decimal.NewFromInt(int64(times))),
		})
	}
	return &dtos.SuggestedQuoteLinesResponse{RegionLabel: region.Label(), Lines: lines}, nil
}

/* ------------------------------------------------------------------
   Pricing
------------------------------------------------------------------ */

// Compute prices a set of line inputs without persisting anything.
// Excluded lines come back with a zero total so the caller can show
// the full package alongside what was actually quoted.
func (s *QuoteService) Compute(lines []dtos.QuoteLineInput) ([]models.QuoteLineItem, dtos.QuoteTotalsDTO) {
	items := make([]models.QuoteLineItem, 0, len(lines))
	annual := decimal.Zero
	for _, in := range lines {
		lineTotal := decimal.Zero
		if in.Included {
			lineTotal = in.PricePerVisit.Mul(decimal.NewFromInt(int64(in.TimesPerYear)))
			annual = annual.Add(lineTotal)
		}
		items = append(items, models.QuoteLineItem{
			Category:      in.Category,
			Frequency:     FrequencyLabel(in.Category, in.TimesPerYear),
			TimesPerYear:  in.TimesPerYear,
			PricePerVisit: in.PricePerVisit,
			Included:      in.Included,
			LineTotal:     lineTotal,
		})
	}
	return items, quoteTotals(annual)
}

// quoteTotals derives the money summary from the annual figure. The
// internal cost estimate assumes delivery at QuoteCostFactor of the
// quoted price.
func quoteTotals(annual decimal.Decimal) dtos.QuoteTotalsDTO {
	totals := dtos.QuoteTotalsDTO{
		AnnualTotal:   annual,
		MonthlyTotal:  decimal.Zero,
		EstimatedCost: annual.Mul(decimal.NewFromFloat(constants.QuoteCostFactor)).Round(2),
		Margin:        decimal.Zero,
		MarginPct:     decimal.Zero,
	}
	totals.Margin = annual.Sub(totals.EstimatedCost)
	if annual.IsPositive() {
		totals.MonthlyTotal = annual.Div(decimal.NewFromInt(12)).Round(2)
		totals.MarginPct = totals.Margin.Div(annual).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return totals
}

/* ------------------------------------------------------------------
   Persistence
------------------------------------------------------------------ */

func (s *QuoteService) Save(ctx context.Context, req *dtos.SaveQuoteRequest) (*models.Quote, error) {
	items, totals := s.Compute(req.Lines)
	if !totals.AnnualTotal.IsPositive() {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Annual quote must be greater than 0 to save.",
		}
	}

	quote := &models.Quote{
		ID:            uuid.New(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PropertyName:  req.PropertyName,
		RegionLabel:   req.RegionLabel,
		SizeBand:      req.SizeBand,
		Sqft:          req.Sqft,
		Notes:         req.Notes,
		Status:        constants.QuoteStatusDraft,
		AnnualTotal:   totals.AnnualTotal,
		MonthlyTotal:  totals.MonthlyTotal,
		EstimatedCost: totals.EstimatedCost,
		Margin:        totals.Margin,
		MarginPct:     totals.MarginPct,
		LineItems:     items,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	utils.Logger.WithField("quote_id", quote.ID).WithField("annual_total", quote.AnnualTotal).
		Info("Quote saved")
	return quote, nil
}

func (s *QuoteService) List(ctx context.Context) ([]*models.Quote, error) {
	return s.quoteRepo.ListAll(ctx)
}

func (s *QuoteService) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, utils.ErrNotFound
	}
	return quote, nil
}

// Delete removes a quote and its line items. Converted quotes keep the
// property they created; only the quote record goes away.
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return err
	}
	utils.Logger.WithField("quote_id", id).Info("Quote deleted")
	return nil
}

/* ------------------------------------------------------------------
   Delivery and conversion
------------------------------------------------------------------ */

// Email sends the quote to its customer, workbook attached, and marks it
// Sent on success. The returned string is the delivery outcome, phrased
// for the admin.
func (s *QuoteService) Email(ctx context.Context, id uuid.UUID) (string, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if quote.CustomerEmail == "" {
		return "", &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Quote has no customer email address",
		}
	}

	wb, filename, err := s.Workbook(ctx, id)
	if err != nil {
		return "", err
	}
	buf, err := wb.WriteToBuffer()
	wb.Close()
	if err != nil {
		return "", err
	}

	result := s.notifier.SendQuoteEmail(ctx, quote, EmailAttachment{
		Filename:    filename,
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
	})
	if result == EmailSentResult {
		if err := s.quoteRepo.UpdateStatus(ctx, id, constants.QuoteStatusSent); err != nil {
			return result, err
		}
	}
	return result, nil
}

// ConvertToProperty turns an accepted quote into a managed property.
// Only included lines carry over; each becomes a Scheduled service with
// a note pointing back at the source quote. The quote's region label
// supplies the state and city, and the credited revenue starts at the
// standard credited share of the quoted total.
func (s *QuoteService) ConvertToProperty(ctx context.Context, id uuid.UUID) (*dtos.ConvertQuoteResponse, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	included := make([]models.QuoteLineItem, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		if item.Included {
			included = append(included, item)
		}
	}
	if len(included) == 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Quote has no included line items to convert",
		}
	}

	state, city := parseRegionLabel(quote.RegionLabel)
	name := quote.PropertyName
	if name == "" {
		name = fmt.Sprintf("Quoted Property #%s", quote.ID)
	}

	prop := &models.Property{
		ID:             uuid.New(),
		Name:           name,
		City:           city,
		State:          state,
		AnnualQuote:    quote.AnnualTotal,
		AnnualCredited: quote.AnnualTotal.Mul(decimal.NewFromFloat(constants.QuoteCreditedFactor)).Round(2),
	}
	if err := s.propRepo.Create(ctx, prop); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Imported from quote #%s", quote.ID)
	for _, item := range included {
		svc := &models.PropertyService{
			ID:           uuid.New(),
			PropertyID:   prop.ID,
			Category:     item.Category,
			Frequency:    FrequencyLabel(item.Category, item.TimesPerYear),
			TimesPerYear: item.TimesPerYear,
			EachTimeCost: item.PricePerVisit,
			Status:       constants.ServiceStatusScheduled,
			Notes:        note,
		}
		if err := s.serviceRepo.Create(ctx, svc); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quote.ID, constants.QuoteStatusAccepted); err != nil {
		return nil, err
	}

	utils.Logger.WithField("quote_id", quote.ID).WithField("property_id", prop.ID).
		Info("Quote converted to property")
	return &dtos.ConvertQuoteResponse{Property: *prop, ServicesCreated: len(included)}, nil
}

// parseRegionLabel recovers state and city from a "ST - City - Tier"
// label. Missing segments come back empty rather than erroring, since
// labels on older quotes may be freeform.
func parseRegionLabel(label string) (state, city string) {
	parts := strings.Split(label, "-")
	if len(parts) > 0 {
		state = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		city = strings.TrimSpace(parts[1])
	}
	return state, city
}

/* ------------------------------------------------------------------
   Workbook export
------------------------------------------------------------------ */

// Workbook renders a saved quote as a two-sheet spreadsheet: the priced
// line items plus a short summary block.
func (s *QuoteService) Workbook(ctx context.Context, id uuid.UUID) (*excelize.File, string, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, "Quote"); err != nil {
		return nil, "", err
	}

	headers := []string{"Service", "Times / Year", "Price / Visit ($)", "Annual Line Total ($)", "Included"}
	rows := make([][]any, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		includedLabel := "No"
		if item.Included {
			includedLabel = "Yes"
		}
		rows = append(rows, []any{
			item.Category,
			item.TimesPerYear,
			item.PricePerVisit.InexactFloat64(),
			item.LineTotal.InexactFloat64(),
			includedLabel,
		})
	}
	if err := writeSheet(f, "Quote", headers, rows); err != nil {
		return nil, "", err
	}

	summaryRows := [][]any{
		{"Region", quote.RegionLabel},
		{"Customer", quote.CustomerName},
		{"Property", quote.PropertyName},
		{"Annual Quote", "$" + quote.AnnualTotal.StringFixed(2)},
		{"Monthly (approx)", "$" + quote.MonthlyTotal.StringFixed(2)},
	}
	if err := addSheet(f, "Summary", []string{"Metric", "Value"}, summaryRows); err != nil {
		return nil, "", err
	}

	return f, fmt.Sprintf("quote_%s.xlsx", quote.ID), nil
}
