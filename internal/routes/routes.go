package routes

// Route paths, grouped by audience. Admin routes require an admin
// token, owner routes an owner token; shared routes accept either.
const (
	Health    = "/api/v1/health"
	AuthLogin = "/api/v1/auth/login"

	// Admin: properties and configured services
	AdminProperties         = "/api/v1/admin/properties"
	AdminProperty           = "/api/v1/admin/properties/{propertyID}"
	AdminPropertyFinancials = "/api/v1/admin/properties/{propertyID}/financials"
	AdminPropertyServices   = "/api/v1/admin/properties/{propertyID}/services"
	AdminPropertyEvents     = "/api/v1/admin/properties/{propertyID}/events"
	AdminServices           = "/api/v1/admin/services"
	AdminService            = "/api/v1/admin/services/{serviceID}"
	AdminServiceStatus      = "/api/v1/admin/services/{serviceID}/status"

	// Admin: attachments
	AdminServiceAttachments = "/api/v1/admin/services/{serviceID}/attachments"
	AdminServiceAttachment  = "/api/v1/admin/attachments/services/{attachmentID}"
	AdminTicketAttachments  = "/api/v1/admin/tickets/{ticketID}/attachments"
	AdminTicketAttachment   = "/api/v1/admin/attachments/tickets/{attachmentID}"

	// Admin: tickets
	AdminTickets = "/api/v1/admin/tickets"
	AdminTicket  = "/api/v1/admin/tickets/{ticketID}"

	// Admin: scheduling
	AdminEvents        = "/api/v1/admin/events"
	AdminEvent         = "/api/v1/admin/events/{eventID}"
	AdminEventStatus   = "/api/v1/admin/events/{eventID}/status"
	AdminEventProvider = "/api/v1/admin/events/{eventID}/provider"
	AdminEventReminder = "/api/v1/admin/events/{eventID}/reminder"
	AdminPersonnel     = "/api/v1/admin/personnel"
	AdminPerson        = "/api/v1/admin/personnel/{personID}"

	// Admin: pricing and users
	AdminPrices = "/api/v1/admin/prices"
	AdminPrice  = "/api/v1/admin/prices/{priceID}"
	AdminUsers  = "/api/v1/admin/users"
	AdminUser   = "/api/v1/admin/users/{userID}"

	// Admin: reports and dashboard
	AdminReportProperty                  = "/api/v1/admin/reports/properties/{propertyID}"
	AdminReportPropertyExport            = "/api/v1/admin/reports/properties/{propertyID}/export"
	AdminReportPropertyFulfilment        = "/api/v1/admin/reports/properties/{propertyID}/fulfilment"
	AdminReportPropertyFulfilmentExport  = "/api/v1/admin/reports/properties/{propertyID}/fulfilment/export"
	AdminReportConsolidated              = "/api/v1/admin/reports/consolidated"
	AdminReportConsolidatedExport        = "/api/v1/admin/reports/consolidated/export"
	AdminReportPortfolioFulfilment       = "/api/v1/admin/reports/fulfilment"
	AdminReportPortfolioFulfilmentExport = "/api/v1/admin/reports/fulfilment/export"
	AdminDashboardMetrics                = "/api/v1/admin/dashboard/metrics"

	// Admin: quote builder
	AdminQuoteConfig  = "/api/v1/admin/quotes/config"
	AdminQuoteSuggest = "/api/v1/admin/quotes/suggest"
	AdminQuoteCompute = "/api/v1/admin/quotes/compute"
	AdminQuotes       = "/api/v1/admin/quotes"
	AdminQuote        = "/api/v1/admin/quotes/{quoteID}"
	AdminQuoteEmail   = "/api/v1/admin/quotes/{quoteID}/email"
	AdminQuoteConvert = "/api/v1/admin/quotes/{quoteID}/convert"
	AdminQuoteExport  = "/api/v1/admin/quotes/{quoteID}/export"

	// Owner: everything resolves against the token's property
	OwnerProperty           = "/api/v1/owner/property"
	OwnerSummary            = "/api/v1/owner/summary"
	OwnerServices           = "/api/v1/owner/services"
	OwnerServiceAttachments = "/api/v1/owner/services/{serviceID}/attachments"
	OwnerServiceAttachment  = "/api/v1/owner/attachments/services/{attachmentID}"
	OwnerReport             = "/api/v1/owner/report"
	OwnerReportExport       = "/api/v1/owner/report/export"
	OwnerTickets            = "/api/v1/owner/tickets"
	OwnerTicket             = "/api/v1/owner/tickets/{ticketID}"
	OwnerTicketAttachments  = "/api/v1/owner/tickets/{ticketID}/attachments"
	OwnerTicketAttachment   = "/api/v1/owner/attachments/tickets/{attachmentID}"

	// Shared
	Chat = "/api/v1/chat"
)
