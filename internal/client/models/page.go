// Package models holds the DTOs exchanged with the admin REST API.
package models

import (
	"net/url"
	"strconv"
)

// Pagination is the metadata returned alongside every list page.
type Pagination struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// HasNext reports whether a further page exists.
func (p *Page[T]) HasNext() bool {
	return p.Pagination.Page < p.Pagination.TotalPages
}

// ListQuery holds the query parameters accepted by list endpoints. Zero
// values are omitted so the backend applies its own defaults.
type ListQuery struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Key is a stable cache key for the query; Encode sorts by parameter name.
func (q ListQuery) Key() string {
	return q.Values().Encode()
}
