package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/migrations"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
)

type testEnv struct {
	db        *sql.DB
	props     repositories.PropertyRepository
	services  repositories.PropertyServiceRepository
	users     repositories.UserRepository
	tickets   repositories.TicketRepository
	events    repositories.ServiceEventRepository
	personnel repositories.ServicePersonRepository
	prices    repositories.PriceMasterRepository
	regions   repositories.RegionRepository
	quotes    repositories.QuoteRepository
	svcAtts   repositories.ServiceAttachmentRepository
	ticketAtt repositories.TicketAttachmentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(context.Background(), db))

	return &testEnv{
		db:        db,
		props:     repositories.NewPropertyRepository(db),
		services:  repositories.NewPropertyServiceRepository(db),
		users:     repositories.NewUserRepository(db),
		tickets:   repositories.NewTicketRepository(db),
		events:    repositories.NewServiceEventRepository(db),
		personnel: repositories.NewServicePersonRepository(db),
		prices:    repositories.NewPriceMasterRepository(db),
		regions:   repositories.NewRegionRepository(db),
		quotes:    repositories.NewQuoteRepository(db),
		svcAtts:   repositories.NewServiceAttachmentRepository(db),
		ticketAtt: repositories.NewTicketAttachmentRepository(db),
	}
}

func (e *testEnv) reportService() *ReportService {
	return NewReportService(e.props, e.services, e.users, e.tickets, e.events, e.personnel, e.prices)
}

func seedTestProperty(t *testing.T, e *testEnv, name string) *models.Property {
	t.Helper()
	p := &models.Property{
		ID:      uuid.New(),
		Name:    name,
		Address: "200 Oak Ln",
		City:    "Austin",
		State:   "TX",
		Zip:     "78701",
	}
	require.NoError(t, e.props.Create(context.Background(), p))
	return p
}

func seedTestService(t *testing.T, e *testEnv, propertyID uuid.UUID, category string, times int, cost string) *models.PropertyService {
	t.Helper()
	s := &models.PropertyService{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		Category:     category,
		Frequency:    FrequencyLabel(category, times),
		TimesPerYear: times,
		EachTimeCost: decimal.RequireFromString(cost),
		Status:       constants.ServiceStatusScheduled,
	}
	require.NoError(t, e.services.Create(context.Background(), s))
	return s
}

func seedTestOwner(t *testing.T, e *testEnv, username string, propertyID *uuid.UUID, email, phone string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "x",
		FullName:     "Owner " + username,
		Role:         constants.RoleOwner,
		Email:        email,
		Phone:        phone,
		PropertyID:   propertyID,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func seedTestPerson(t *testing.T, e *testEnv, name, email, phone string, active bool) *models.ServicePerson {
	t.Helper()
	p := &models.ServicePerson{
		ID:       uuid.New(),
		FullName: name,
		Email:    email,
		Phone:    phone,
		IsActive: active,
	}
	require.NoError(t, e.personnel.Create(context.Background(), p))
	return p
}

/* ------------------------------------------------------------------
   Fake transports
------------------------------------------------------------------ */

type sentEmail struct {
	To          string
	Name        string
	Subject     string
	Body        string
	Attachments []EmailAttachment
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) Send(_ context.Context, toEmail, toName, subject, body string, attachments ...EmailAttachment) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{To: toEmail, Name: toName, Subject: subject, Body: body, Attachments: attachments})
	return nil
}

type sentSMS struct {
	To   string
	Body string
}

type fakeSMSSender struct {
	sent []sentSMS
	err  error
}

func (f *fakeSMSSender) Send(_ context.Context, toPhone, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{To: toPhone, Body: body})
	return nil
}
