package models

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC7807 error body, served as application/problem+json.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// TraceID echoes the request ID so clients can quote it in reports.
	TraceID string `json:"traceId"`

	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError points at one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Field error codes.
const (
	CodeRequired     = "REQUIRED"
	CodeOutOfRange   = "OUT_OF_RANGE"
	CodeInvalidRange = "INVALID_RANGE"
	CodeTooLong      = "TOO_LONG"
	CodeInvalid      = "INVALID"
)

const problemBase = "https://api.packwise.app/problems/"

// Problem type URIs.
const (
	ProblemTypeValidation       = problemBase + "validation-error"
	ProblemTypeUnauthorized     = problemBase + "unauthorized"
	ProblemTypeNotFound         = problemBase + "not-found"
	ProblemTypeConflict         = problemBase + "conflict"
	ProblemTypeTooManyRequests  = problemBase + "too-many-requests"
	ProblemTypeInternal         = problemBase + "internal-error"
	ProblemTypeUnavailable      = problemBase + "service-unavailable"
	ProblemTypeLocationNotFound = problemBase + "location-not-found"
	ProblemTypeUnsupportedMedia = problemBase + "unsupported-media-type"
	ProblemTypeTLSRequired      = problemBase + "tls-required"
)

type problemKind struct {
	typ    string
	title  string
	status int
}

var (
	kindValidation       = problemKind{ProblemTypeValidation, "Validation error", http.StatusBadRequest}
	kindUnauthorized     = problemKind{ProblemTypeUnauthorized, "Unauthorized", http.StatusUnauthorized}
	kindNotFound         = problemKind{ProblemTypeNotFound, "Not found", http.StatusNotFound}
	kindLocationNotFound = problemKind{ProblemTypeLocationNotFound, "Location not found", http.StatusNotFound}
	kindConflict         = problemKind{ProblemTypeConflict, "Conflict", http.StatusConflict}
	kindUnsupportedMedia = problemKind{ProblemTypeUnsupportedMedia, "Unsupported media type", http.StatusUnsupportedMediaType}
	kindTooManyRequests  = problemKind{ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests}
	kindInternal         = problemKind{ProblemTypeInternal, "Internal server error", http.StatusInternalServerError}
	kindUnavailable      = problemKind{ProblemTypeUnavailable, "Service unavailable", http.StatusServiceUnavailable}
)

func (k problemKind) new(traceID, detail string) *Problem {
	return &Problem{Type: k.typ, Title: k.title, Status: k.status, Detail: detail, TraceID: traceID}
}

// NewProblem builds a problem of an arbitrary type.
func NewProblem(problemType, title string, status int, traceID string) *Problem {
	return problemKind{problemType, title, status}.new(traceID, "")
}

// WithDetail sets Detail and returns p.
func (p *Problem) WithDetail(detail string) *Problem {
	p.Detail = detail
	return p
}

// WithInstance sets Instance, normally the request path, and returns p.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

// WithErrors sets the field errors and returns p.
func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

// Write sends the problem with its status code and the X-Request-Id header.
// The body is encoded before any header is written, so an encoding failure
// still yields a well-formed 500.
func (p *Problem) Write(w http.ResponseWriter) {
	body, err := json.Marshal(p)
	status := p.Status
	if err != nil {
		fallback := kindInternal.new(p.TraceID, "")
		body, _ = json.Marshal(fallback) //nolint:errcheck // plain struct
		status = fallback.Status
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// NewBadRequest is a 400 validation problem.
func NewBadRequest(traceID, detail string, errors []FieldError) *Problem {
	return kindValidation.new(traceID, detail).WithErrors(errors)
}

// NewUnauthorized is a 401.
func NewUnauthorized(traceID, detail string) *Problem {
	return kindUnauthorized.new(traceID, detail)
}

// NewNotFound is a 404 for a missing resource.
func NewNotFound(traceID, detail string) *Problem {
	return kindNotFound.new(traceID, detail)
}

// NewLocationNotFound is a 404 for a destination the weather provider
// could not resolve.
func NewLocationNotFound(traceID, location string) *Problem {
	return kindLocationNotFound.new(traceID,
		`location "`+location+`" not found; check the spelling or try a nearby city`)
}

// NewConflict is a 409.
func NewConflict(traceID, detail string) *Problem {
	return kindConflict.new(traceID, detail)
}

// NewUnsupportedMediaType is a 415.
func NewUnsupportedMediaType(traceID, detail string) *Problem {
	return kindUnsupportedMedia.new(traceID, detail)
}

// NewTooManyRequests is a 429. Callers set Retry-After.
func NewTooManyRequests(traceID, detail string) *Problem {
	return kindTooManyRequests.new(traceID, detail)
}

// NewInternalError is a 500. The detail must not leak internals.
func NewInternalError(traceID, detail string) *Problem {
	return kindInternal.new(traceID, detail)
}

// NewServiceUnavailable is a 503.
func NewServiceUnavailable(traceID, detail string) *Problem {
	return kindUnavailable.new(traceID, detail)
}
