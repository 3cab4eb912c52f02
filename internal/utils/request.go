package utils

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if stdErrors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, errors.ValidationError("Invalid input data").WithError(err))
		return false
	}

	return true
}

// ParseObjectID reads a hex ObjectID from the named path value.
func ParseObjectID(r *http.Request, name string) (primitive.ObjectID, error) {

	id, err := primitive.ObjectIDFromHex(r.PathValue(name))
	if err != nil {
		return primitive.NilObjectID, errors.AddValidationError(name, "must be a valid id").WithError(err)
	}

	return id, nil
}

// ParsePagination reads page and pageSize from the query string. Missing or
// malformed values fall back to the defaults.
func ParsePagination(r *http.Request, defaultSize, maxSize int) (page, size int) {

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err = strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || size < 1 || size > maxSize {
		size = defaultSize
	}

	return page, size
}
