// Package respond writes JSON responses and maps domain errors to status
// codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
	"github.com/MrJamesThe3rd/rounds/internal/validation"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var (
	notFound = []error{
		customer.ErrNotFound,
		job.ErrNotFound,
		job.ErrCustomerNotFound,
		zone.ErrNotFound,
		payment.ErrNotFound,
	}

	conflicts = []error{
		zone.ErrDuplicateName,
		payment.ErrAlreadyPaid,
	}
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes {"error": msg} with status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Error maps err onto a response. Anything unrecognised is logged and hidden
// behind a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if v, ok := validation.From(err); ok {
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: v})
		return
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			Message(w, http.StatusNotFound, target.Error())
			return
		}
	}

	for _, target := range conflicts {
		if errors.Is(err, target) {
			Message(w, http.StatusConflict, target.Error())
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)

	Message(w, http.StatusInternalServerError, "internal error")
}

// Decode reads a JSON body into dst, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			Message(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}

		Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())

		return false
	}

	return true
}

// ID parses the named URL parameter as a positive integer id, writing a 400
// when it is not one.
func ID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		Message(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}

	return id, true
}
