package constants

// User roles
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// Service lifecycle statuses. Transitions are unconstrained; any value
// may follow any other.
const (
	ServiceStatusScheduled  = "Scheduled"
	ServiceStatusInProgress = "In Progress"
	ServiceStatusCompleted  = "Completed"
	ServiceStatusOnHold     = "On Hold"
	ServiceStatusCancelled  = "Cancelled"
)

// ServiceStatuses lists every valid service status, in display order.
var ServiceStatuses = []string{
	ServiceStatusScheduled,
	ServiceStatusInProgress,
	ServiceStatusCompleted,
	ServiceStatusOnHold,
	ServiceStatusCancelled,
}

// Scheduled-event statuses
const (
	EventStatusScheduled = "Scheduled"
	EventStatusCompleted = "Completed"
	EventStatusCancelled = "Cancelled"
)

var EventStatuses = []string{
	EventStatusScheduled,
	EventStatusCompleted,
	EventStatusCancelled,
}

// Derived due states for scheduled events
const (
	EventDueStateOverdue  = "Overdue"
	EventDueStateDueToday = "Due today"
	EventDueStateUpcoming = "Upcoming"
)

// Ticket statuses and priorities
const (
	TicketStatusOpen       = "Open"
	TicketStatusInProgress = "In Progress"
	TicketStatusClosed     = "Closed"

	TicketPriorityLow    = "Low"
	TicketPriorityMedium = "Medium"
	TicketPriorityHigh   = "High"
)

var (
	TicketStatuses   = []string{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed}
	TicketPriorities = []string{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh}
)

// Quote statuses
const (
	QuoteStatusDraft    = "Draft"
	QuoteStatusSent     = "Sent"
	QuoteStatusAccepted = "Accepted"
)

// Attachment upload limits
const (
	MaxServiceAttachmentBytes = 3 * 1024 * 1024 // 3 MB per service photo/document
	MaxTicketAttachmentBytes  = 5 * 1024 * 1024 // 5 MB per ticket attachment
)

// Fulfilment labels derived from planned/completed visit counts
const (
	FulfilmentNotConfigured = "Not configured"
	FulfilmentOnTrack       = "On Track"
	FulfilmentNotStarted    = "Not Started"
	FulfilmentInProgress    = "In Progress"
)

// Quote economics: estimated internal cost as a fraction of quoted
// revenue, and the credited fraction applied when a quote converts
// into a property.
const (
	QuoteCostFactor     = 0.6
	QuoteCreditedFactor = 0.95
)

// Date layouts used for calendar fields stored as TEXT.
const (
	DateLayout = "2006-01-02"
)
