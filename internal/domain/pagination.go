package domain

import (
	"math"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
)

// PageRequest selects a window of a listing.
type PageRequest struct {
	Limit  int
	Offset int
}

// NewPageRequest clamps limit into (0, MaxPageLimit] and offset to >= 0.
func NewPageRequest(limit, offset int) PageRequest {
	if limit <= 0 {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PageRequest{Limit: limit, Offset: offset}
}

// PageFromNumber converts a 1-based page number into an offset window.
// Page numbers past the int range are clamped so the offset never overflows.
func PageFromNumber(page, limit int) PageRequest {
	req := NewPageRequest(limit, 0)
	if maxPage := math.MaxInt / req.Limit; page > maxPage {
		page = maxPage
	}
	if page > 1 {
		req.Offset = (page - 1) * req.Limit
	}
	return req
}

// Page is one window of a listing plus the totals needed to page through it.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	MaxPages   int `json:"max_pages"`
}

// NewPage computes MaxPages as ceil(total/limit).
func NewPage[T any](items []T, total int, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	maxPages := 0
	if req.Limit > 0 {
		maxPages = (total + req.Limit - 1) / req.Limit
	}
	return Page[T]{Items: items, TotalCount: total, MaxPages: maxPages}
}
