package service

import (
	"net/http"

	"smart-life-organizer/internal/model"
	"smart-life-organizer/pkg/apierror"
)

// ValidationError gives a failed payload check the 422 VALIDATION_ERROR shape,
// keeping model.ErrInvalidInput matchable.
func ValidationError(err error) error {
	apiErr := apierror.Wrap(model.ErrInvalidInput, "VALIDATION_ERROR", "request validation failed", http.StatusUnprocessableEntity)
	apiErr.Details = err.Error()
	return apiErr
}
