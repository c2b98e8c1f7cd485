package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// TicketController serves the admin view of maintenance tickets. Owners
// raise and read their own tickets through OwnerController.
type TicketController struct {
	tickets  *services.TicketService
	validate *validator.Validate
}

func NewTicketController(tickets *services.TicketService) *TicketController {
	return &TicketController{tickets: tickets, validate: validator.New()}
}

// GET /api/v1/admin/tickets
func (c *TicketController) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	tickets, err := c.tickets.ListAll(r.Context(), status)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// GET /api/v1/admin/tickets/{ticketID}
func (c *TicketController) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ticket, err := c.tickets.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// PUT /api/v1/admin/tickets/{ticketID}
func (c *TicketController) UpdateTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	ticket, err := c.tickets.Update(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// DELETE /api/v1/admin/tickets/{ticketID}
func (c *TicketController) DeleteTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "ticketID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.tickets.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
