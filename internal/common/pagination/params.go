package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params is a requested page. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of items before the page.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// ParseQuery reads page and limit from q, applying config defaults when absent.
// Non-numeric, non-positive or over-limit values are rejected.
func ParseQuery(q url.Values, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// WithDefaults fills in missing values and caps Limit at config.MaxLimit.
func (p Params) WithDefaults(config Config) Params {
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
