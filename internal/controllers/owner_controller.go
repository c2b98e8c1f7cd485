package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/*
OwnerController is the whole owner-facing surface. Every handler
resolves the caller's linked property (or owner id) from the token
claims and scopes reads and writes to it, so an owner can never reach
another customer's data no matter what ids they put in the path.
*/
type OwnerController struct {
	portfolio   *services.PortfolioService
	reports     *services.ReportService
	tickets     *services.TicketService
	attachments *services.AttachmentService
	validate    *validator.Validate
}

func NewOwnerController(
	portfolio *services.PortfolioService,
	reports *services.ReportService,
	tickets *services.TicketService,
	attachments *services.AttachmentService,
) *OwnerController {
	return &OwnerController{
		portfolio:   portfolio,
		reports:     reports,
		tickets:     tickets,
		attachments: attachments,
		validate:    validator.New(),
	}
}

/* ------------------------------------------------------------------
   Property dashboard
------------------------------------------------------------------ */

// GET /api/v1/owner/property
func (c *OwnerController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	prop, err := c.portfolio.GetProperty(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// GET /api/v1/owner/summary
func (c *OwnerController) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	report, err := c.reports.PropertyReport(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OwnerSummaryResponse{
		PropertyName:    report.Property.Name,
		TotalServices:   report.TotalServices,
		TotalAnnualCost: report.TotalAnnualCost,
	})
}

// GET /api/v1/owner/services
func (c *OwnerController) ListServicesHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	svcs, err := c.portfolio.ListServices(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, svcs)
}

// GET /api/v1/owner/report
func (c *OwnerController) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	report, err := c.reports.PropertyReport(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// GET /api/v1/owner/report/export
func (c *OwnerController) ExportReportHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	f, filename, err := c.reports.PropertyWorkbook(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	writeWorkbook(w, f, filename)
}

/* ------------------------------------------------------------------
   Service attachments (read only)
------------------------------------------------------------------ */

// GET /api/v1/owner/services/{serviceID}/attachments
func (c *OwnerController) ListServiceAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	serviceID, err := pathUUID(r, "serviceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	svc, err := c.portfolio.GetService(r.Context(), serviceID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if svc.PropertyID != propertyID {
		utils.HandleAppError(w, utils.ErrForbidden)
		return
	}

	atts, err := c.attachments.ListServiceAttachments(r.Context(), serviceID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, atts)
}

// GET /api/v1/owner/attachments/services/{attachmentID}
func (c *OwnerController) DownloadServiceAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := callerPropertyID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	att, f, err := c.attachments.OpenServiceAttachment(r.Context(), attachmentID, &propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	serveAttachment(w, f, att.FileName, att.ContentType, att.SizeBytes)
}

/* ------------------------------------------------------------------
   Tickets
------------------------------------------------------------------ */

// POST /api/v1/owner/tickets
func (c *OwnerController) CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	ticket, err := c.tickets.Create(r.Context(), ownerID, callerPropertyRef(r), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, ticket)
}

// GET /api/v1/owner/tickets
func (c *OwnerController) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	tickets, err := c.tickets.ListForOwner(r.Context(), ownerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// GET /api/v1/owner/tickets/{ticketID}
func (c *OwnerController) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ticket, err := c.tickets.GetForOwner(r.Context(), ownerID, ticketID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

/* ------------------------------------------------------------------
   Ticket attachments
------------------------------------------------------------------ */

// POST /api/v1/owner/tickets/{ticketID}/attachments
func (c *OwnerController) UploadTicketAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing file upload", nil, err)
		return
	}
	defer file.Close()

	att, err := c.attachments.UploadTicketAttachment(r.Context(), ticketID, &ownerID, header.Filename, header.Header.Get("Content-Type"), file, callerUsername(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, att)
}

// GET /api/v1/owner/tickets/{ticketID}/attachments
func (c *OwnerController) ListTicketAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	// Resolving through the owner-scoped getter enforces ownership
	// before any attachment rows are listed.
	if _, err := c.tickets.GetForOwner(r.Context(), ownerID, ticketID); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	atts, err := c.attachments.ListTicketAttachments(r.Context(), ticketID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, atts)
}

// GET /api/v1/owner/attachments/tickets/{attachmentID}
func (c *OwnerController) DownloadTicketAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	att, f, err := c.attachments.OpenTicketAttachment(r.Context(), attachmentID, &ownerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	serveAttachment(w, f, att.FileName, att.ContentType, att.SizeBytes)
}
