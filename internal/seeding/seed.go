// Package seeding installs the fixed demo dataset on first boot: ten
// Texas properties carrying the standard six-service package, one owner
// login per property, the crew roster, a month of mowing events and the
// quote builder reference data.
package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// Demo login credentials. The admin account is created on first boot;
// one owner login is created per demo property.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	OwnerPassword = "owner123"
)

// demoMarkup is the quote markup over annual service cost used for the
// demo financials. Credited revenue applies the standard realization
// factor on top.
const demoMarkup = 1.3

// Repos collects every repository the seeder writes through.
type Repos struct {
	Properties repositories.PropertyRepository
	Users      repositories.UserRepository
	Services   repositories.PropertyServiceRepository
	Prices     repositories.PriceMasterRepository
	Personnel  repositories.ServicePersonRepository
	Events     repositories.ServiceEventRepository
	Tickets    repositories.TicketRepository
	Regions    repositories.RegionRepository
}

type demoService struct {
	code         string
	category     string
	frequency    string
	timesPerYear int
	rate         int64
}

// standardServices is the six-service package installed on every demo
// property. The same rows feed the price master and the region rate card
// so suggested quotes reproduce the demo pricing.
var standardServices = []demoService{
	{"WEED_CONTROL", "Weed Control Spraying", "3 Times / Year", 3, 85},
	{"MOWING", "Mowing", "Weekly (22 Visits)", 22, 60},
	{"BLOWING", "Blowing & Trash Cleanup", "Weekly (22 Visits)", 22, 15},
	{"FERTILIZER", "Fertilizer", "5 Times / Year", 5, 80},
	{"TREE_SHRUB", "Tree & Shrub Care", "Twice / Year", 2, 120},
	{"MULCH", "Mulch", "Every 6 Months", 2, 600},
}

type demoProperty struct {
	name    string
	address string
	city    string
	state   string
	zip     string
}

var demoProperties = []demoProperty{
	{"Oakridge Villas", "123 Oakridge Ln", "Frisco", "TX", "75034"},
	{"Maple Heights", "456 Maple St", "Plano", "TX", "75025"},
	{"Cedar Grove Business Park", "12 Cedar Grove Dr", "Frisco", "TX", "75034"},
	{"Lakeview Estates", "87 Lakeview Cir", "Little Elm", "TX", "75068"},
	{"Willow Creek Offices", "25 Willow Creek Trl", "McKinney", "TX", "75071"},
	{"Sunset Ridge Center", "90 Sunset Ridge Rd", "Frisco", "TX", "75036"},
	{"Pine Meadows Plaza", "311 Pine Meadows Pl", "Plano", "TX", "75024"},
	{"Brookstone Park", "77 Brookstone Way", "Allen", "TX", "75013"},
	{"Heritage Oaks Campus", "64 Heritage Oaks Blvd", "Frisco", "TX", "75034"},
	{"Stonebridge Court", "19 Stonebridge Ct", "McKinney", "TX", "75070"},
}

// Run installs the demo dataset. It is idempotent: when any properties,
// users or price master rows already exist the database is considered
// populated and nothing is written.
func Run(ctx context.Context, r Repos) error {
	present, err := dataPresent(ctx, r)
	if err != nil {
		return fmt.Errorf("check for existing data: %w", err)
	}
	if present {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	adminHash, err := utils.HashPassword(AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	// All demo owners share one password, so hash it once.
	ownerHash, err := utils.HashPassword(OwnerPassword)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New(),
		Username:     AdminUsername,
		PasswordHash: adminHash,
		FullName:     "System Admin",
		Role:         constants.RoleAdmin,
	}
	if err := r.Users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	for i, dp := range demoProperties {
		if err := seedProperty(ctx, r, i, dp, ownerHash); err != nil {
			return err
		}
	}

	if err := seedPriceMaster(ctx, r); err != nil {
		return err
	}
	if err := seedQuoteReference(ctx, r); err != nil {
		return err
	}
	if err := seedPersonnel(ctx, r); err != nil {
		return err
	}

	utils.Logger.Infof("Seeding completed: %d properties with the standard service package.", len(demoProperties))
	return nil
}

// seedProperty creates one demo property together with its owner login,
// its six services, the financial rollup, a month of mowing events and,
// for the first two properties, an open demo ticket.
func seedProperty(ctx context.Context, r Repos, idx int, dp demoProperty, ownerHash string) error {
	prop := &models.Property{
		ID:      uuid.New(),
		Name:    dp.name,
		Address: dp.address,
		City:    dp.city,
		State:   dp.state,
		Zip:     dp.zip,
	}
	if err := r.Properties.Create(ctx, prop); err != nil {
		return fmt.Errorf("seed property %q: %w", dp.name, err)
	}

	owner := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("owner%d", idx+1),
		PasswordHash: ownerHash,
		FullName:     fmt.Sprintf("Property Owner %d", idx+1),
		Role:         constants.RoleOwner,
		PropertyID:   &prop.ID,
	}
	if err := r.Users.Create(ctx, owner); err != nil {
		return fmt.Errorf("seed owner for %q: %w", dp.name, err)
	}

	annualCost := decimal.Zero
	var mowingID uuid.UUID
	for _, svc := range standardServices {
		row := &models.PropertyService{
			ID:           uuid.New(),
			PropertyID:   prop.ID,
			Category:     svc.category,
			Frequency:    svc.frequency,
			TimesPerYear: svc.timesPerYear,
			EachTimeCost: decimal.NewFromInt(svc.rate),
			Status:       constants.ServiceStatusScheduled,
			Notes:        fmt.Sprintf("Standard %s package", svc.category),
			UpdatedBy:    AdminUsername,
		}
		if err := r.Services.Create(ctx, row); err != nil {
			return fmt.Errorf("seed service %q for %q: %w", svc.category, dp.name, err)
		}
		annualCost = annualCost.Add(row.TotalAnnualCost())
		if svc.code == "MOWING" {
			mowingID = row.ID
		}
	}

	annualQuote := annualCost.Mul(decimal.NewFromFloat(demoMarkup)).Round(2)
	annualCredited := annualQuote.Mul(decimal.NewFromFloat(constants.QuoteCreditedFactor)).Round(2)
	if err := r.Properties.UpdateFinancials(ctx, prop.ID, annualQuote, annualCredited); err != nil {
		return fmt.Errorf("seed financials for %q: %w", dp.name, err)
	}

	// Three completed April mowings plus one scheduled May visit give the
	// calendar and fulfilment reports something to show out of the box.
	year := time.Now().Year()
	for d := 0; d < 3; d++ {
		event := &models.ServiceEvent{
			ID:              uuid.New(),
			PropertyID:      prop.ID,
			ServiceID:       &mowingID,
			ServiceCategory: "Mowing",
			ScheduledDate:   fmt.Sprintf("%d-04-%02d", year, 10+d),
			Status:          constants.EventStatusCompleted,
		}
		if err := r.Events.Create(ctx, event); err != nil {
			return fmt.Errorf("seed events for %q: %w", dp.name, err)
		}
	}
	upcoming := &models.ServiceEvent{
		ID:              uuid.New(),
		PropertyID:      prop.ID,
		ServiceID:       &mowingID,
		ServiceCategory: "Mowing",
		ScheduledDate:   fmt.Sprintf("%d-05-01", year),
		Status:          constants.EventStatusScheduled,
	}
	if err := r.Events.Create(ctx, upcoming); err != nil {
		return fmt.Errorf("seed events for %q: %w", dp.name, err)
	}

	if idx < 2 {
		ticket := &models.Ticket{
			ID:          uuid.New(),
			PropertyID:  prop.ID,
			OwnerID:     owner.ID,
			Title:       fmt.Sprintf("Irrigation concern #%d", idx+1),
			Description: "Noticed dry patches near the entrance. Please inspect irrigation coverage.",
			Status:      constants.TicketStatusOpen,
			Priority:    constants.TicketPriorityMedium,
		}
		if err := r.Tickets.Create(ctx, ticket); err != nil {
			return fmt.Errorf("seed ticket for %q: %w", dp.name, err)
		}
	}
	return nil
}

func seedPriceMaster(ctx context.Context, r Repos) error {
	for _, svc := range standardServices {
		row := &models.PriceMasterRow{
			ID:            uuid.New(),
			Region:        "TX",
			Category:      svc.category,
			Frequency:     svc.frequency,
			TimesPerYear:  svc.timesPerYear,
			SuggestedRate: decimal.NewFromInt(svc.rate),
		}
		if err := r.Prices.Create(ctx, row); err != nil {
			return fmt.Errorf("seed price master row %q: %w", svc.category, err)
		}
	}
	return nil
}

// seedQuoteReference creates the demo market (TX - Frisco - Small
// Industrial), the sellable service catalog and the rate card for the
// 0-8000 sqft band.
func seedQuoteReference(ctx context.Context, r Repos) error {
	region := &models.Region{
		ID:         uuid.New(),
		State:      "TX",
		City:       "Frisco",
		Tier:       "Small Industrial",
		CostFactor: decimal.NewFromInt(1),
		RateFactor: decimal.NewFromInt(1),
	}
	if err := r.Regions.CreateRegion(ctx, region); err != nil {
		return fmt.Errorf("seed region: %w", err)
	}

	for _, svc := range standardServices {
		item := &models.ServiceCatalogItem{
			ID:                  uuid.New(),
			Code:                svc.code,
			Name:                svc.category,
			DefaultTimesPerYear: svc.timesPerYear,
		}
		if err := r.Regions.CreateCatalogItem(ctx, item); err != nil {
			return fmt.Errorf("seed catalog item %q: %w", svc.code, err)
		}

		rate := &models.RegionServiceRate{
			ID:            uuid.New(),
			RegionID:      region.ID,
			CatalogItemID: item.ID,
			MinSqft:       0,
			MaxSqft:       8000,
			PricePerVisit: decimal.NewFromInt(svc.rate),
		}
		if err := r.Regions.CreateRate(ctx, rate); err != nil {
			return fmt.Errorf("seed rate for %q: %w", svc.code, err)
		}
	}
	return nil
}

func seedPersonnel(ctx context.Context, r Repos) error {
	people := []models.ServicePerson{
		{FullName: "John Green", RoleTitle: "Crew Lead", Email: "john.green@example.com", Phone: "214-555-0101"},
		{FullName: "Maria Lopez", RoleTitle: "Mower", Email: "maria.lopez@example.com", Phone: "214-555-0102"},
		{FullName: "Sam Patel", RoleTitle: "Spray Tech", Email: "sam.patel@example.com", Phone: "214-555-0103"},
	}
	for i := range people {
		people[i].ID = uuid.New()
		people[i].IsActive = true
		if err := r.Personnel.Create(ctx, &people[i]); err != nil {
			return fmt.Errorf("seed service person %q: %w", people[i].FullName, err)
		}
	}
	return nil
}

func dataPresent(ctx context.Context, r Repos) (bool, error) {
	props, err := r.Properties.Count(ctx)
	if err != nil {
		return false, err
	}
	users, err := r.Users.Count(ctx)
	if err != nil {
		return false, err
	}
	prices, err := r.Prices.Count(ctx)
	if err != nil {
		return false, err
	}
	return props > 0 || users > 0 || prices > 0, nil
}
