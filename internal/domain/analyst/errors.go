package analyst

import (
	"errors"
	"fmt"

	"github.com/okian/headcount/internal/domain/model"
)

// Error kinds raised by analyst queries. They alias the model sentinels so record
// accessors and the analyst agree on errors.Is matching.
var (
	ErrInsufficientInformation = model.ErrInsufficientInformation
	ErrUnknownData             = model.ErrUnknownData
	ErrEmptyData               = model.ErrEmptyData
)

// ErrUnknownDistrict is returned for names no repository knows. It is an ErrUnknownData.
var ErrUnknownDistrict = fmt.Errorf("unknown district: %w", ErrUnknownData)

// outcome classifies err for metrics labels.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownDistrict):
		return "unknown_district"
	case errors.Is(err, ErrInsufficientInformation):
		return "insufficient_information"
	case errors.Is(err, ErrUnknownData):
		return "unknown_data"
	case errors.Is(err, ErrEmptyData):
		return "empty_data"
	default:
		return "error"
	}
}
