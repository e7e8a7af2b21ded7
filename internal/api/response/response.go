// Package response writes JSON and problem+json bodies for the API handlers.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/packwise/packwise/internal/api/middleware"
	"github.com/packwise/packwise/internal/api/models"
)

// MaxBodyBytes limits request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// JSON writes data with the given status and the request's X-Request-Id.
// A nil data writes headers only. Values that cannot be encoded produce a
// 500 problem instead of a truncated body.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	var body []byte
	if data != nil {
		var err error
		if body, err = json.Marshal(data); err != nil {
			InternalError(w, r, "response could not be encoded")
			return
		}
		body = append(body, '\n')
	}

	setRequestID(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_, _ = w.Write(body)
	}
}

// Created writes a 201 with an optional Location header.
func Created(w http.ResponseWriter, r *http.Request, location string, data interface{}) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, r, http.StatusCreated, data)
}

// NoContent writes a 204.
func NoContent(w http.ResponseWriter, r *http.Request) {
	setRequestID(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON decodes a single JSON object from the request body into dst,
// rejecting unknown fields and trailing data. On failure it writes a 400
// problem and returns false. An empty body is accepted when allowEmpty is set.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errTrailingData
	}

	var maxErr *http.MaxBytesError
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF) && allowEmpty:
		return true
	case errors.Is(err, io.EOF):
		BadRequest(w, r, "request body is required", nil)
	case errors.As(err, &maxErr):
		BadRequest(w, r, fmt.Sprintf("request body must be at most %d bytes", MaxBodyBytes), nil)
	default:
		BadRequest(w, r, "invalid JSON body: "+err.Error(), nil)
	}
	return false
}

var errTrailingData = errors.New("body must contain a single JSON object")

// Error writes problem, filling Instance from the request path and TraceID
// from the request ID when the caller left them empty.
func Error(w http.ResponseWriter, r *http.Request, problem *models.Problem) {
	if problem.Instance == "" {
		problem.Instance = r.URL.Path
	}
	if problem.TraceID == "" {
		problem.TraceID = middleware.GetRequestID(r.Context())
	}
	problem.Write(w)
}

// BadRequest writes a 400 validation problem.
func BadRequest(w http.ResponseWriter, r *http.Request, detail string, fieldErrors []models.FieldError) {
	Error(w, r, models.NewBadRequest(traceID(r), detail, fieldErrors))
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewUnauthorized(traceID(r), detail))
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewNotFound(traceID(r), detail))
}

// LocationNotFound writes a 404 for a destination that did not geocode.
func LocationNotFound(w http.ResponseWriter, r *http.Request, location string) {
	Error(w, r, models.NewLocationNotFound(traceID(r), location))
}

// Conflict writes a 409.
func Conflict(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewConflict(traceID(r), detail))
}

// InternalError writes a 500.
func InternalError(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewInternalError(traceID(r), detail))
}

// ServiceUnavailable writes a 503.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewServiceUnavailable(traceID(r), detail))
}

func traceID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

func setRequestID(w http.ResponseWriter, r *http.Request) {
	if id := traceID(r); id != "" {
		w.Header().Set(middleware.RequestIDHeader, id)
	}
}
