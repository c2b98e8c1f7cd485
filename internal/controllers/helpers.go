package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/pentlavallir/Landscaping-US/internal/middleware"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// pathUUID parses a UUID route variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    fmt.Sprintf("Invalid %s", name),
			Err:        err,
		}
	}
	return id, nil
}

// callerID returns the authenticated user's id from the request context.
func callerID(r *http.Request) (uuid.UUID, error) {
	raw, _ := r.Context().Value(middleware.ContextKeyUserID).(string)
	if raw == "" {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Missing user identity in context",
		}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Invalid user identity in context",
			Err:        err,
		}
	}
	return id, nil
}

// callerUsername returns the username carried by the access token.
func callerUsername(r *http.Request) string {
	name, _ := r.Context().Value(middleware.ContextKeyUsername).(string)
	return name
}

// callerPropertyRef returns the owner's property id from the token, or
// nil when the account has no mapping.
func callerPropertyRef(r *http.Request) *uuid.UUID {
	raw, _ := r.Context().Value(middleware.ContextKeyPropertyID).(string)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// callerPropertyID is the strict variant for owner endpoints that cannot
// work without a property mapping.
func callerPropertyID(r *http.Request) (uuid.UUID, error) {
	ref := callerPropertyRef(r)
	if ref == nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Your user is not correctly linked to a property. Please contact admin.",
		}
	}
	return *ref, nil
}

// writeWorkbook streams an XLSX workbook as a download and closes it.
func writeWorkbook(w http.ResponseWriter, f *excelize.File, filename string) {
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		utils.Logger.WithError(err).Error("Failed to stream workbook")
	}
}

// serveAttachment streams a stored upload back to the client and closes
// the file handle.
func serveAttachment(w http.ResponseWriter, f *os.File, fileName, contentType string, size int64) {
	defer f.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if _, err := io.Copy(w, f); err != nil {
		utils.Logger.WithError(err).Error("Failed to stream attachment")
	}
}
