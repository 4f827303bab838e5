package api

import (
	"errors"
	"net/http"

	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/internal/domain/analyst"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// classify maps domain errors to an HTTP status and error code. Unknown districts are
// checked before unknown data since the former wraps the latter.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, analyst.ErrUnknownDistrict), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "unknown_district"
	case errors.Is(err, analyst.ErrInsufficientInformation), errors.Is(err, repository.ErrInvalidName):
		return http.StatusBadRequest, "insufficient_information"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, analyst.ErrUnknownData):
		return http.StatusUnprocessableEntity, "unknown_data"
	case errors.Is(err, analyst.ErrEmptyData):
		return http.StatusUnprocessableEntity, "empty_data"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
