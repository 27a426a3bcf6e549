package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/reader"
	"github.com/km-arc/go-beans/framework/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with JSON helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "no bean definition registered for [x]")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// ValidationError sends 422 with the error bag.
//
//	res.ValidationError(validator.Errors())
func (res *Response) ValidationError(errors *validation.Errors) {
	res.JSON(http.StatusUnprocessableEntity, errors)
}

// FromError maps container errors to a status:
//   - *reader.DefinitionStoreError    → 400, whatever it wraps
//   - *validation.Errors              → 422
//   - *beans.NotFoundError            → 404
//   - anything else (bean creation)   → 500
func (res *Response) FromError(err error) {
	var bag *validation.Errors
	switch {
	case errors.Is(err, reader.ErrDefinitionStore):
		res.Error(http.StatusBadRequest, err.Error())
	case errors.As(err, &bag):
		res.ValidationError(bag)
	case isTopLevelNotFound(err):
		res.NotFound(err.Error())
	default:
		res.ServerError(err.Error())
	}
}

// isTopLevelNotFound is true for a bare NotFoundError. A missing dependency
// arrives wrapped in a BeanCreationError and is a server-side wiring fault.
func isTopLevelNotFound(err error) bool {
	return errors.Is(err, beans.ErrNotFound) && !errors.Is(err, beans.ErrBeanCreation)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
