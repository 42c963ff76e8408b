package model

import (
	"fmt"
	"strconv"
)

// GenerationRequest fully determines one generated page.
type GenerationRequest struct {
	Locale         string  `json:"locale"`
	Seed           int64   `json:"seed"`
	Page           int     `json:"page"`
	AverageLikes   float64 `json:"likes"`
	AverageReviews float64 `json:"reviews"`
}

// WithPage returns a copy of the request pointing at another page.
func (r GenerationRequest) WithPage(page int) GenerationRequest {
	r.Page = page
	return r
}

// Key is a canonical string form of the request, stable across processes.
func (r GenerationRequest) Key() string {
	return fmt.Sprintf("%s:%d:%d:%s:%s",
		r.Locale,
		r.Seed,
		r.Page,
		strconv.FormatFloat(r.AverageLikes, 'g', -1, 64),
		strconv.FormatFloat(r.AverageReviews, 'g', -1, 64),
	)
}
