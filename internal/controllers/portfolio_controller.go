package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// PortfolioController serves the admin surface for properties and the
// services configured on them.
type PortfolioController struct {
	portfolio *services.PortfolioService
	validate  *validator.Validate
}

func NewPortfolioController(portfolio *services.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolio: portfolio, validate: validator.New()}
}

/* ------------------------------------------------------------------
   Properties
------------------------------------------------------------------ */

// POST /api/v1/admin/properties
func (c *PortfolioController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	prop, err := c.portfolio.CreateProperty(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// GET /api/v1/admin/properties
func (c *PortfolioController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	props, err := c.portfolio.ListProperties(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// GET /api/v1/admin/properties/{propertyID}
func (c *PortfolioController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	detail, err := c.portfolio.PropertyDetail(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// PUT /api/v1/admin/properties/{propertyID}
func (c *PortfolioController) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	prop, err := c.portfolio.UpdateProperty(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// PATCH /api/v1/admin/properties/{propertyID}/financials
func (c *PortfolioController) UpdateFinancialsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePropertyFinancialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	prop, err := c.portfolio.UpdateFinancials(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// DELETE /api/v1/admin/properties/{propertyID}
func (c *PortfolioController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.portfolio.DeleteProperty(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------------------------------------------------------
   Property services
------------------------------------------------------------------ */

// POST /api/v1/admin/properties/{propertyID}/services
func (c *PortfolioController) AddServiceHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	svc, err := c.portfolio.AddService(r.Context(), propertyID, &req, callerUsername(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, svc)
}

// GET /api/v1/admin/properties/{propertyID}/services
func (c *PortfolioController) ListPropertyServicesHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathUUID(r, "propertyID")
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

// GET /api/v1/admin/services
func (c *PortfolioController) ListAllServicesHandler(w http.ResponseWriter, r *http.Request) {
	svcs, err := c.portfolio.ListAllServices(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, svcs)
}

// GET /api/v1/admin/services/{serviceID}
func (c *PortfolioController) GetServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "serviceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	svc, err := c.portfolio.GetService(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, svc)
}

// PUT /api/v1/admin/services/{serviceID}
func (c *PortfolioController) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "serviceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	svc, err := c.portfolio.UpdateService(r.Context(), id, &req, callerUsername(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, svc)
}

// PATCH /api/v1/admin/services/{serviceID}/status
func (c *PortfolioController) UpdateServiceStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "serviceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateServiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.portfolio.UpdateServiceStatus(r.Context(), id, &req, callerUsername(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/admin/services/{serviceID}
func (c *PortfolioController) DeleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "serviceID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.portfolio.DeleteService(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
