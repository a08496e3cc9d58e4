package shared

import (
	"math"
	"net/http"
	"strconv"
)

// Pagination is the metadata block page renderers consume alongside results.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes pagination metadata for one page of a listing.
func NewPagination(startIndex, page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    startIndex+limit < total,
		HasPrev:    page > 1,
	}
}

// ListQuery carries the validated page window of a list request.
type ListQuery struct {
	Page       int
	Limit      int
	StartIndex int
}

// ParseListQuery reads page and limit from the query string. Both are
// required positive integers; handlers reject the request otherwise.
func ParseListQuery(r *http.Request) (ListQuery, bool) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return ListQuery{}, false
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		return ListQuery{}, false
	}
	return ListQuery{Page: page, Limit: limit, StartIndex: (page - 1) * limit}, true
}
