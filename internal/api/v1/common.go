package v1

import (
	"net/http"

	"github.com/Xunop/book-faker/internal/http/request"
	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/validator"
	"github.com/pkg/errors"
)

// parseGenerationRequest reads the generation parameters from the query
// string, falling back to the configured defaults, and validates them.
func (h *Handler) parseGenerationRequest(r *http.Request) (model.GenerationRequest, error) {
	req := model.GenerationRequest{
		Locale: request.QueryStringParam(r, "locale", h.opts.DefaultLocale),
	}

	var err error
	if req.Seed, err = request.QueryInt64Param(r, "seed", h.opts.DefaultSeed); err != nil {
		return req, err
	}
	if req.Page, err = request.QueryIntParam(r, "page", 0); err != nil {
		return req, err
	}
	if req.AverageLikes, err = request.QueryFloatParam(r, "likes", h.opts.DefaultLikes); err != nil {
		return req, err
	}
	if req.AverageReviews, err = request.QueryFloatParam(r, "reviews", h.opts.DefaultReviews); err != nil {
		return req, err
	}

	if err := validator.ValidateGenerationRequest(&req, h.opts.MaxAverage); err != nil {
		return req, errors.Wrap(err, "invalid request")
	}
	return req, nil
}
