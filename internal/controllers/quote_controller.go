package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// QuoteController serves the quote builder: reference data, suggested
// lines, live totals, and the saved-quote lifecycle through email,
// export and conversion into a managed property.
type QuoteController struct {
	quotes   *services.QuoteService
	validate *validator.Validate
}

func NewQuoteController(quotes *services.QuoteService) *QuoteController {
	return &QuoteController{quotes: quotes, validate: validator.New()}
}

/* ------------------------------------------------------------------
   Builder reference data
------------------------------------------------------------------ */

// GET /api/v1/admin/quotes/config
func (c *QuoteController) ConfigHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.quotes.Config(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

// GET /api/v1/admin/quotes/suggest?region_id=...&sqft=4500
func (c *QuoteController) SuggestHandler(w http.ResponseWriter, r *http.Request) {
	regionID, err := uuid.Parse(r.URL.Query().Get("region_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, `Query parameter "region_id" must be a valid UUID`, nil, err)
		return
	}
	sqft, err := strconv.Atoi(r.URL.Query().Get("sqft"))
	if err != nil || sqft < 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, `Query parameter "sqft" must be a non-negative number`, nil, err)
		return
	}

	suggestion, err := c.quotes.SuggestLines(r.Context(), regionID, sqft)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, suggestion)
}

// POST /api/v1/admin/quotes/compute
func (c *QuoteController) ComputeHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ComputeQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	lines, totals := c.quotes.Compute(req.Lines)
	utils.RespondWithJSON(w, http.StatusOK, dtos.ComputeQuoteResponse{Lines: lines, Totals: totals})
}

/* ------------------------------------------------------------------
   Saved quotes
------------------------------------------------------------------ */

// POST /api/v1/admin/quotes
func (c *QuoteController) SaveQuoteHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SaveQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	quote, err := c.quotes.Save(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, quote)
}

// GET /api/v1/admin/quotes
func (c *QuoteController) ListQuotesHandler(w http.ResponseWriter, r *http.Request) {
	quotes, err := c.quotes.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, quotes)
}

// GET /api/v1/admin/quotes/{quoteID}
func (c *QuoteController) GetQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "quoteID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	quote, err := c.quotes.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, quote)
}

// DELETE /api/v1/admin/quotes/{quoteID}
func (c *QuoteController) DeleteQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "quoteID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.quotes.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/admin/quotes/{quoteID}/email
func (c *QuoteController) EmailQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "quoteID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	result, err := c.quotes.Email(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.QuoteEmailResponse{Result: result})
}

// POST /api/v1/admin/quotes/{quoteID}/convert
func (c *QuoteController) ConvertQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "quoteID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.quotes.ConvertToProperty(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GET /api/v1/admin/quotes/{quoteID}/export
func (c *QuoteController) ExportQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "quoteID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	f, filename, err := c.quotes.Workbook(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	writeWorkbook(w, f, filename)
}
