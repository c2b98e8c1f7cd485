package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// EventController serves the scheduling calendar: one-off and recurring
// visit events, provider assignment and reminder dispatch.
type EventController struct {
	events   *services.EventService
	validate *validator.Validate
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{events: events, validate: validator.New()}
}

// POST /api/v1/admin/events
func (c *EventController) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	event, err := c.events.Create(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// GET /api/v1/admin/events?from=2025-05-01&to=2025-05-31
func (c *EventController) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	from, err := dateParam(r, "from")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	events, err := c.events.ListByDateRange(r.Context(), from, to)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

// GET /api/v1/admin/properties/{propertyID}/events
func (c *EventController) ListPropertyEventsHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	events, err := c.events.ListByProperty(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

// GET /api/v1/admin/events/{eventID}
func (c *EventController) GetEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "eventID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	event, err := c.events.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// PATCH /api/v1/admin/events/{eventID}/status
func (c *EventController) UpdateEventStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "eventID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateEventStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	event, err := c.events.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// PATCH /api/v1/admin/events/{eventID}/provider
func (c *EventController) AssignProviderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "eventID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.AssignEventProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	event, err := c.events.AssignProvider(r.Context(), id, req.ProviderID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// POST /api/v1/admin/events/{eventID}/reminder
func (c *EventController) SendReminderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "eventID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.events.SendReminder(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/admin/events/{eventID}
func (c *EventController) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "eventID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.events.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dateParam reads a required YYYY-MM-DD query parameter.
func dateParam(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Query parameter %q is required", name),
		}
	}
	if _, err := time.Parse(constants.DateLayout, value); err != nil {
		return "", &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("Query parameter %q must be a YYYY-MM-DD date", name),
			Err:        err,
		}
	}
	return value, nil
}
