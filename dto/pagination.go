package dto

import (
	"errors"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit from the query string. Missing,
// malformed or non-positive values fall back to the defaults and limit is
// capped at MaxLimit.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Page:  positiveOr(q.Get("page"), DefaultPage),
		Limit: positiveOr(q.Get("limit"), DefaultLimit),
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows before the page. It saturates at math.MaxInt
// so a page far past the end still selects nothing.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit); zero rows means zero pages.
func (p Pagination) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	// Atoi clamps out of range input to math.MaxInt, which is still a page
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n
	}
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Page is the envelope of every paginated listing.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](data []T, p Pagination, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}
