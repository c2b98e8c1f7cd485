package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/middleware"
	"github.com/pentlavallir/Landscaping-US/internal/routes"
	"github.com/pentlavallir/Landscaping-US/internal/services"
)

// RouterDeps collects every controller mounted on the API router plus
// the auth service backing the token middleware.
type RouterDeps struct {
	Auth services.AuthService

	Health      *HealthController
	Login       *AuthController
	Portfolio   *PortfolioController
	Attachments *AttachmentController
	Tickets     *TicketController
	Events      *EventController
	Personnel   *PersonnelController
	Prices      *PriceController
	Users       *UserController
	Reports     *ReportController
	Quotes      *QuoteController
	Owner       *OwnerController
	Chat        *ChatController
}

// NewRouter mounts the whole versioned API surface: public health and
// login, the admin subrouter, the owner subrouter and the shared chat
// endpoint.
func NewRouter(d RouterDeps) *mux.Router {
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, d.Health.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, d.Login.LoginHandler).Methods(http.MethodPost)

	// Admin routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.Auth(d.Auth), middleware.RequireRole(constants.RoleAdmin))

	admin.HandleFunc(routes.AdminProperties, d.Portfolio.CreatePropertyHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProperties, d.Portfolio.ListPropertiesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminProperty, d.Portfolio.GetPropertyHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminProperty, d.Portfolio.UpdatePropertyHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminProperty, d.Portfolio.DeletePropertyHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminPropertyFinancials, d.Portfolio.UpdateFinancialsHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminPropertyServices, d.Portfolio.AddServiceHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminPropertyServices, d.Portfolio.ListPropertyServicesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminServices, d.Portfolio.ListAllServicesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminService, d.Portfolio.GetServiceHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminService, d.Portfolio.UpdateServiceHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminService, d.Portfolio.DeleteServiceHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminServiceStatus, d.Portfolio.UpdateServiceStatusHandler).Methods(http.MethodPatch)

	admin.HandleFunc(routes.AdminServiceAttachments, d.Attachments.UploadServiceAttachmentHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminServiceAttachments, d.Attachments.ListServiceAttachmentsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminServiceAttachment, d.Attachments.DownloadServiceAttachmentHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminServiceAttachment, d.Attachments.DeleteServiceAttachmentHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminTicketAttachments, d.Attachments.UploadTicketAttachmentHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminTicketAttachments, d.Attachments.ListTicketAttachmentsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminTicketAttachment, d.Attachments.DownloadTicketAttachmentHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminTicketAttachment, d.Attachments.DeleteTicketAttachmentHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminTickets, d.Tickets.ListTicketsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminTicket, d.Tickets.GetTicketHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminTicket, d.Tickets.UpdateTicketHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminTicket, d.Tickets.DeleteTicketHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminEvents, d.Events.CreateEventHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminEvents, d.Events.ListEventsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPropertyEvents, d.Events.ListPropertyEventsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminEvent, d.Events.GetEventHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminEvent, d.Events.DeleteEventHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminEventStatus, d.Events.UpdateEventStatusHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminEventProvider, d.Events.AssignProviderHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminEventReminder, d.Events.SendReminderHandler).Methods(http.MethodPost)

	admin.HandleFunc(routes.AdminPersonnel, d.Personnel.CreatePersonHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminPersonnel, d.Personnel.ListPersonnelHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPerson, d.Personnel.GetPersonHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPerson, d.Personnel.UpdatePersonHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminPerson, d.Personnel.DeactivatePersonHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminPrices, d.Prices.CreatePriceHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminPrices, d.Prices.ListPricesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPrice, d.Prices.GetPriceHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPrice, d.Prices.UpdatePriceHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminPrice, d.Prices.DeletePriceHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminUsers, d.Users.CreateUserHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminUsers, d.Users.ListUsersHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminUser, d.Users.GetUserHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminUser, d.Users.UpdateUserHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminUser, d.Users.DeleteUserHandler).Methods(http.MethodDelete)

	admin.HandleFunc(routes.AdminReportProperty, d.Reports.PropertyReportHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportPropertyExport, d.Reports.ExportPropertyReportHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportPropertyFulfilment, d.Reports.PropertyFulfilmentHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportPropertyFulfilmentExport, d.Reports.ExportPropertyFulfilmentHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportConsolidated, d.Reports.ConsolidatedReportHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportConsolidatedExport, d.Reports.ExportConsolidatedReportHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportPortfolioFulfilment, d.Reports.PortfolioFulfilmentHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminReportPortfolioFulfilmentExport, d.Reports.ExportPortfolioFulfilmentHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminDashboardMetrics, d.Reports.DashboardMetricsHandler).Methods(http.MethodGet)

	// Literal quote paths must be registered before the {quoteID} routes
	// or mux will route them into the id-parsing handlers.
	admin.HandleFunc(routes.AdminQuoteConfig, d.Quotes.ConfigHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminQuoteSuggest, d.Quotes.SuggestHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminQuoteCompute, d.Quotes.ComputeHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminQuotes, d.Quotes.SaveQuoteHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminQuotes, d.Quotes.ListQuotesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminQuote, d.Quotes.GetQuoteHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminQuote, d.Quotes.DeleteQuoteHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminQuoteEmail, d.Quotes.EmailQuoteHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminQuoteConvert, d.Quotes.ConvertQuoteHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminQuoteExport, d.Quotes.ExportQuoteHandler).Methods(http.MethodGet)

	// Owner routes
	owner := router.NewRoute().Subrouter()
	owner.Use(middleware.Auth(d.Auth), middleware.RequireRole(constants.RoleOwner))

	owner.HandleFunc(routes.OwnerProperty, d.Owner.GetPropertyHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerSummary, d.Owner.GetSummaryHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerServices, d.Owner.ListServicesHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerServiceAttachments, d.Owner.ListServiceAttachmentsHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerServiceAttachment, d.Owner.DownloadServiceAttachmentHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerReport, d.Owner.GetReportHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerReportExport, d.Owner.ExportReportHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerTickets, d.Owner.CreateTicketHandler).Methods(http.MethodPost)
	owner.HandleFunc(routes.OwnerTickets, d.Owner.ListTicketsHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerTicket, d.Owner.GetTicketHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerTicketAttachments, d.Owner.UploadTicketAttachmentHandler).Methods(http.MethodPost)
	owner.HandleFunc(routes.OwnerTicketAttachments, d.Owner.ListTicketAttachmentsHandler).Methods(http.MethodGet)
	owner.HandleFunc(routes.OwnerTicketAttachment, d.Owner.DownloadTicketAttachmentHandler).Methods(http.MethodGet)

	// Shared routes: any authenticated user
	shared := router.NewRoute().Subrouter()
	shared.Use(middleware.Auth(d.Auth))
	shared.HandleFunc(routes.Chat, d.Chat.ChatHandler).Methods(http.MethodPost)

	return router
}
