package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	WriteJson(w, statusCode, response)
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse *ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}

	}

	response := APIResponse{
		Success: false,
		Error:   errorResponse,
	}

	WriteJson(w, statusCode, response)
}

// ValidationError writes one message per failed field. Nested fields are
// reported by their JSON path, e.g. order_items[0].quantity.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fieldMessage(err))
	}

	WriteJson(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Error: &ErrorResponse{
			Code:    errors.ErrCodeValidation,
			Message: "Validation failed",
			Details: errMsgs,
		},
	})
}

func fieldMessage(err validator.FieldError) string {

	field := fieldPath(err)

	// Length rules read as characters on strings and as bounds on numbers.
	unit := ""
	if err.Kind() == reflect.String {
		unit = " characters"
	}

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", field)
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("Field %s must be a valid URL", field)
	case "min", "gte":
		return fmt.Sprintf("Field %s must be at least %s%s", field, err.Param(), unit)
	case "max", "lte":
		return fmt.Sprintf("Field %s must be at most %s%s", field, err.Param(), unit)
	case "len":
		return fmt.Sprintf("Field %s must be exactly %s%s", field, err.Param(), unit)
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", field, err.Param())
	case "lt":
		return fmt.Sprintf("Field %s must be less than %s", field, err.Param())
	default:
		return fmt.Sprintf("Field %s is invalid: %s=%s", field, err.Tag(), err.Param())
	}
}

// fieldPath drops the request type from the namespace.
func fieldPath(err validator.FieldError) string {
	if _, path, ok := strings.Cut(err.Namespace(), "."); ok {
		return path
	}

	return err.Field()
}
