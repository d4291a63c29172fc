package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	taxreportdomain "github.com/smallbiznis/taxflow/internal/taxreport/domain"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/smallbiznis/taxflow/pkg/db"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, taxzonedomain.ErrZoneInUse),
		db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog maps an error onto (type, code) for request logs.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if vErr := asValidationErrors(err); vErr != nil && len(vErr.Errors) > 0 {
		return "validation_error", vErr.Errors[0].Code
	}
	if isValidationError(err) {
		return "validation_error", validationErrorCode(err)
	}
	if isNotFoundError(err) {
		return "not_found", err.Error()
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, taxzonedomain.ErrZoneInUse) || db.IsDuplicateKeyErr(err) {
		return "conflict", err.Error()
	}
	return "internal_error", err.Error()
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, taxenginedomain.ErrNoItems),
		errors.Is(err, taxenginedomain.ErrMissingAddress),
		errors.Is(err, taxenginedomain.ErrInvalidQuantity),
		errors.Is(err, taxenginedomain.ErrInvalidAmount):
		return true
	case errors.Is(err, taxzonedomain.ErrInvalidID),
		errors.Is(err, taxzonedomain.ErrInvalidName),
		errors.Is(err, taxzonedomain.ErrInvalidCountry),
		errors.Is(err, taxzonedomain.ErrNoLocations):
		return true
	case errors.Is(err, taxratedomain.ErrInvalidID),
		errors.Is(err, taxratedomain.ErrInvalidName),
		errors.Is(err, taxratedomain.ErrInvalidRatePercent):
		return true
	case errors.Is(err, taxsettingsdomain.ErrInvalidBasis),
		errors.Is(err, taxsettingsdomain.ErrInvalidShippingClass):
		return true
	case errors.Is(err, taxreportdomain.ErrMissingDateRange),
		errors.Is(err, taxreportdomain.ErrInvalidDateRange),
		errors.Is(err, taxreportdomain.ErrRangeTooWide):
		return true
	case errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice):
		return true
	case errors.Is(err, orderdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, taxzonedomain.ErrNotFound),
		errors.Is(err, taxratedomain.ErrNotFound),
		errors.Is(err, taxratedomain.ErrZoneNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if strings.HasPrefix(code, "missing_") {
		return strings.TrimPrefix(code, "missing_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "no_line_items":
		return "at least one line item is required"
	case "missing_shipping_address":
		return "shipping address is required"
	case "missing_date_range":
		return "start and end dates are required"
	default:
		return "invalid value"
	}
}
