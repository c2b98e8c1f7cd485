package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// PersonnelController manages the crew roster.
type PersonnelController struct {
	personnel *services.PersonnelService
	validate  *validator.Validate
}

func NewPersonnelController(personnel *services.PersonnelService) *PersonnelController {
	return &PersonnelController{personnel: personnel, validate: validator.New()}
}

// POST /api/v1/admin/personnel
func (c *PersonnelController) CreatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	person, err := c.personnel.Create(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, person)
}

// GET /api/v1/admin/personnel?include_inactive=true
func (c *PersonnelController) ListPersonnelHandler(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	people, err := c.personnel.List(r.Context(), includeInactive)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, people)
}

// GET /api/v1/admin/personnel/{personID}
func (c *PersonnelController) GetPersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "personID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	person, err := c.personnel.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, person)
}

// PUT /api/v1/admin/personnel/{personID}
func (c *PersonnelController) UpdatePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "personID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	person, err := c.personnel.Update(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, person)
}

// DELETE /api/v1/admin/personnel/{personID}
//
// Deactivates rather than deletes so past event assignments keep resolving.
func (c *PersonnelController) DeactivatePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "personID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.personnel.Deactivate(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
