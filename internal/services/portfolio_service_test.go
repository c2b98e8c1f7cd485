package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func (e *testEnv) portfolioService(email EmailSender, sms SMSSender) *PortfolioService {
	return NewPortfolioService(e.props, e.services, NewNotificationService(email, sms, e.users))
}

func TestPortfolioServicePropertyCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	created, err := svc.CreateProperty(ctx, &dtos.CreatePropertyRequest{
		Name:    "Cedar Grove",
		Address: "410 Cedar Rd",
		City:    "Frisco",
		State:   "TX",
		Zip:     "75034",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Cedar Grove", got.Name)

	list, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.UpdateProperty(ctx, created.ID, &dtos.UpdatePropertyRequest{
		Name:    "Cedar Grove Annex",
		Address: "412 Cedar Rd",
		City:    "Frisco",
		State:   "TX",
		Zip:     "75034",
	})
	require.NoError(t, err)
	require.Equal(t, "Cedar Grove Annex", updated.Name)

	_, err = svc.GetProperty(ctx, uuid.New())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPortfolioServicePropertyDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	seedTestService(t, env, prop.ID, "Mowing", 22, "50")
	seedTestService(t, env, prop.ID, "Fertilizer", 5, "80")

	detail, err := svc.PropertyDetail(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, prop.ID, detail.Property.ID)
	require.Len(t, detail.Services, 2)

	_, err = svc.PropertyDetail(ctx, uuid.New())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPortfolioServiceUpdateFinancials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")

	updated, err := svc.UpdateFinancials(ctx, prop.ID, &dtos.UpdatePropertyFinancialsRequest{
		AnnualQuote:    decimal.RequireFromString("2340"),
		AnnualCredited: decimal.RequireFromString("2223"),
	})
	require.NoError(t, err)
	require.True(t, updated.AnnualQuote.Equal(decimal.RequireFromString("2340")))
	require.True(t, updated.AnnualCredited.Equal(decimal.RequireFromString("2223")))

	reloaded, err := svc.GetProperty(ctx, prop.ID)
	require.NoError(t, err)
	require.True(t, reloaded.AnnualCredited.Equal(decimal.RequireFromString("2223")))

	_, err = svc.UpdateFinancials(ctx, prop.ID, &dtos.UpdatePropertyFinancialsRequest{
		AnnualQuote:    decimal.RequireFromString("-10"),
		AnnualCredited: decimal.Zero,
	})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.StatusCode)
	require.Equal(t, "Revenue figures cannot be negative", appErr.Message)
}

func TestPortfolioServiceDeleteProperty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	bare := seedTestProperty(t, env, "Bare Lot")
	require.NoError(t, svc.DeleteProperty(ctx, bare.ID))
	_, err := svc.GetProperty(ctx, bare.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	occupied := seedTestProperty(t, env, "Green Acres")
	seedTestService(t, env, occupied.ID, "Mowing", 22, "50")
	err = svc.DeleteProperty(ctx, occupied.ID)
	require.ErrorIs(t, err, utils.ErrHasDependents)

	require.ErrorIs(t, svc.DeleteProperty(ctx, uuid.New()), utils.ErrNotFound)
}

func TestPortfolioServiceAddService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")

	created, err := svc.AddService(ctx, prop.ID, &dtos.CreateServiceRequest{
		Category:     "Mowing",
		TimesPerYear: 22,
		EachTimeCost: decimal.RequireFromString("50"),
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, constants.ServiceStatusScheduled, created.Status)
	require.Equal(t, "Weekly (22 visits)", created.Frequency)
	require.Equal(t, "admin", created.UpdatedBy)

	_, err = svc.AddService(ctx, prop.ID, &dtos.CreateServiceRequest{
		Category: "Mowing",
		Status:   "Paused",
	}, "admin")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.StatusCode)

	_, err = svc.AddService(ctx, uuid.New(), &dtos.CreateServiceRequest{Category: "Mowing"}, "admin")
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPortfolioServiceUpdateService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	existing := seedTestService(t, env, prop.ID, "Mowing", 22, "50")

	updated, err := svc.UpdateService(ctx, existing.ID, &dtos.UpdateServiceRequest{
		Category:     "Fertilizer",
		TimesPerYear: 5,
		EachTimeCost: decimal.RequireFromString("80"),
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, "5 Times / Year", updated.Frequency, "blank frequency is re-derived from the new category")
	require.Equal(t, constants.ServiceStatusScheduled, updated.Status, "blank status keeps the current one")

	reloaded, err := svc.GetService(ctx, existing.ID)
	require.NoError(t, err)
	require.Equal(t, "Fertilizer", reloaded.Category)
	require.True(t, reloaded.EachTimeCost.Equal(decimal.RequireFromString("80")))
}

func TestPortfolioServiceUpdateServiceStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	email := &fakeEmailSender{}
	svc := env.portfolioService(email, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	existing := seedTestService(t, env, prop.ID, "Mowing", 22, "50")
	seedTestOwner(t, env, "owner1", &prop.ID, "o1@example.com", "+15125550101")

	resp, err := svc.UpdateServiceStatus(ctx, existing.ID, &dtos.UpdateServiceStatusRequest{
		Status:      constants.ServiceStatusCompleted,
		NotifyEmail: true,
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, constants.ServiceStatusCompleted, resp.Service.Status)
	require.Len(t, resp.Notifications, 1)
	require.Equal(t, EmailSentResult, resp.Notifications[0].Email)
	require.Len(t, email.sent, 1)

	reloaded, err := svc.GetService(ctx, existing.ID)
	require.NoError(t, err)
	require.Equal(t, constants.ServiceStatusCompleted, reloaded.Status)
	require.Equal(t, "admin", reloaded.UpdatedBy)

	quiet, err := svc.UpdateServiceStatus(ctx, existing.ID, &dtos.UpdateServiceStatusRequest{
		Status: constants.ServiceStatusOnHold,
	}, "admin")
	require.NoError(t, err)
	require.Empty(t, quiet.Notifications)
	require.Len(t, email.sent, 1, "no channels requested, no new sends")

	_, err = svc.UpdateServiceStatus(ctx, existing.ID, &dtos.UpdateServiceStatusRequest{
		Status: "Finished",
	}, "admin")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, `Invalid service status "Finished"`, appErr.Message)
}

func TestPortfolioServiceDeleteService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.portfolioService(nil, nil)

	prop := seedTestProperty(t, env, "Green Acres")
	existing := seedTestService(t, env, prop.ID, "Mowing", 22, "50")

	require.NoError(t, svc.DeleteService(ctx, existing.ID))
	_, err := svc.GetService(ctx, existing.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	require.ErrorIs(t, svc.DeleteService(ctx, uuid.New()), utils.ErrNotFound)
}
