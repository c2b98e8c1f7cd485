package controllers

import (
	"net/http"

	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// AttachmentController serves the admin endpoints for service and ticket
// file attachments. Owner access goes through OwnerController, which
// applies property and ownership restrictions.
type AttachmentController struct {
	attachments *services.AttachmentService
}

func NewAttachmentController(attachments *services.AttachmentService) *AttachmentController {
	return &AttachmentController{attachments: attachments}
}

/* ------------------------------------------------------------------
   Service attachments
------------------------------------------------------------------ */

// POST /api/v1/admin/services/{serviceID}/attachments
func (c *AttachmentController) UploadServiceAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	serviceID, err := pathUUID(r, "serviceID")
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

	att, err := c.attachments.UploadServiceAttachment(r.Context(), serviceID, header.Filename, header.Header.Get("Content-Type"), file, callerUsername(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, att)
}

// GET /api/v1/admin/services/{serviceID}/attachments
func (c *AttachmentController) ListServiceAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	serviceID, err := pathUUID(r, "serviceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	atts, err := c.attachments.ListServiceAttachments(r.Context(), serviceID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, atts)
}

// GET /api/v1/admin/attachments/services/{attachmentID}
func (c *AttachmentController) DownloadServiceAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	att, f, err := c.attachments.OpenServiceAttachment(r.Context(), attachmentID, nil)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	serveAttachment(w, f, att.FileName, att.ContentType, att.SizeBytes)
}

// DELETE /api/v1/admin/attachments/services/{attachmentID}
func (c *AttachmentController) DeleteServiceAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.attachments.DeleteServiceAttachment(r.Context(), attachmentID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------------------------------------------------------
   Ticket attachments
------------------------------------------------------------------ */

// POST /api/v1/admin/tickets/{ticketID}/attachments
func (c *AttachmentController) UploadTicketAttachmentHandler(w http.ResponseWriter, r *http.Request) {
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

	att, err := c.attachments.UploadTicketAttachment(r.Context(), ticketID, nil, header.Filename, header.Header.Get("Content-Type"), file, callerUsername(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, att)
}

// GET /api/v1/admin/tickets/{ticketID}/attachments
func (c *AttachmentController) ListTicketAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathUUID(r, "ticketID")
	if err != nil {
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

// GET /api/v1/admin/attachments/tickets/{attachmentID}
func (c *AttachmentController) DownloadTicketAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	att, f, err := c.attachments.OpenTicketAttachment(r.Context(), attachmentID, nil)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	serveAttachment(w, f, att.FileName, att.ContentType, att.SizeBytes)
}

// DELETE /api/v1/admin/attachments/tickets/{attachmentID}
func (c *AttachmentController) DeleteTicketAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := pathUUID(r, "attachmentID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.attachments.DeleteTicketAttachment(r.Context(), attachmentID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
