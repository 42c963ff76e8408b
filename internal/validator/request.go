package validator // import "github.com/Xunop/book-faker/internal/validator"

import (
	"math"

	"github.com/pkg/errors"

	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/textsource"
)

// ValidateGenerationRequest checks the request preconditions and normalizes
// it in place: the locale is canonicalized and negative averages become zero.
// maxReviews caps the reviews average; likes are only checked for finiteness.
func ValidateGenerationRequest(req *model.GenerationRequest, maxReviews float64) error {
	if req == nil {
		return errors.New("request is nil")
	}
	if req.Page < 0 {
		return errors.Errorf("page must not be negative, got %d", req.Page)
	}

	locale, err := textsource.Resolve(req.Locale)
	if err != nil {
		return err
	}
	req.Locale = locale

	likes, err := validateAverage("likes", req.AverageLikes, 0)
	if err != nil {
		return err
	}
	req.AverageLikes = likes

	reviews, err := validateAverage("reviews", req.AverageReviews, maxReviews)
	if err != nil {
		return err
	}
	req.AverageReviews = reviews
	return nil
}

// ValidateExportRequest checks the number of pages of an export.
func ValidateExportRequest(pages, maxPages int) error {
	if pages <= 0 {
		return errors.Errorf("pages must be positive, got %d", pages)
	}
	if pages > maxPages {
		return errors.Errorf("pages must not exceed %d, got %d", maxPages, pages)
	}
	return nil
}

// validateAverage rejects non-finite values and, when max is positive,
// values above max.
func validateAverage(name string, value, max float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Errorf("%s must be a finite number", name)
	}
	if value < 0 {
		return 0, nil
	}
	if max > 0 && value > max {
		return 0, errors.Errorf("%s must not exceed %v, got %v", name, max, value)
	}
	return value, nil
}
