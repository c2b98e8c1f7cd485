package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// PriceController manages the price master catalog used as the default
// rate card when configuring services.
type PriceController struct {
	pricing  *services.PricingService
	validate *validator.Validate
}

func NewPriceController(pricing *services.PricingService) *PriceController {
	return &PriceController{pricing: pricing, validate: validator.New()}
}

// POST /api/v1/admin/prices
func (c *PriceController) CreatePriceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	row, err := c.pricing.Create(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, row)
}

// GET /api/v1/admin/prices
func (c *PriceController) ListPricesHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := c.pricing.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// GET /api/v1/admin/prices/{priceID}
func (c *PriceController) GetPriceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "priceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	row, err := c.pricing.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, row)
}

// PUT /api/v1/admin/prices/{priceID}
func (c *PriceController) UpdatePriceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "priceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	row, err := c.pricing.Update(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, row)
}

// DELETE /api/v1/admin/prices/{priceID}
func (c *PriceController) DeletePriceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "priceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.pricing.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
