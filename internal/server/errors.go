package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/auth/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/batch"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/pdf"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	entrydomain "github.com/mrigajana-makstark/makstarkrepo2/internal/entry/domain"
	pricingdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/pricing/domain"
	ratedomain "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/token"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrTooManyRequests    = errors.New("too_many_requests")
)

// ValidationError is a request-level input failure with a message meant
// for the caller.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func invalidRequestError() *ValidationError {
	return newValidationError("", "invalid_request", "Invalid request body")
}

// AbortWithError translates domain errors into the HTTP error contract.
// The body shape {"detail": ...} is what the dashboard frontend reads.
func AbortWithError(c *gin.Context, err error) {
	status, detail := classify(err)
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func classify(err error) (int, string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	var itemErr *batch.ItemError
	if errors.As(err, &itemErr) {
		return http.StatusBadRequest, itemErr.Error()
	}

	switch {
	case errors.Is(err, pricingdomain.ErrNoDeliverables):
		return http.StatusBadRequest, "No deliverables provided"
	case errors.Is(err, pricingdomain.ErrInvalidDateRange):
		return http.StatusBadRequest, "Date parsing error: dates must be YYYY-MM-DD"
	case errors.Is(err, entrydomain.ErrMissingClient):
		return http.StatusBadRequest, "clientName is required"
	case errors.Is(err, entrydomain.ErrMissingEvent):
		return http.StatusBadRequest, "eventName is required"
	case errors.Is(err, render.ErrMissingTemplateField):
		return http.StatusBadRequest, "Template formatting error: " + err.Error()
	case errors.Is(err, authdomain.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password is too long (maximum 72 characters)"
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, token.ErrInvalidToken), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "Too many attempts, try again later"
	case errors.Is(err, authdomain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Database service unavailable"
	case errors.Is(err, ratedomain.ErrStoreUnavailable), errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "Service unavailable"
	case errors.Is(err, pdf.ErrEmptyRender):
		return http.StatusInternalServerError, "Generated PDF is empty"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
