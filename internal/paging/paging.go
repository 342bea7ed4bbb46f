// Package paging parses page requests and shapes paged responses.
package paging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

const (
	DefaultSize      = 20
	MaxSize          = 1000
	DefaultSortField = "id"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Request is a validated page request. Column is the store column the sort
// field resolved to.
type Request struct {
	Page      int
	Size      int
	SortField string
	Column    string
	Direction Direction
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// OrderBy returns an ORDER BY clause. Ties are broken by id so pages stay stable.
func (r Request) OrderBy() string {
	if r.Column == "id" {
		return fmt.Sprintf("ORDER BY id %s", r.Direction)
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", r.Column, r.Direction)
}

// Parse validates raw query values. columns maps the accepted sort fields to
// store columns; it is the only way a caller-supplied name reaches SQL.
func Parse(page, size, sortField, sortDirection string, columns map[string]string) (Request, error) {
	req := Request{Size: DefaultSize, SortField: DefaultSortField, Direction: Asc}
	fields := map[string]string{}

	if page = strings.TrimSpace(page); page != "" {
		n, err := strconv.Atoi(page)
		switch {
		case err != nil:
			fields["page"] = "page must be a number"
		case n < 0:
			fields["page"] = "page must not be negative"
		default:
			req.Page = n
		}
	}

	if size = strings.TrimSpace(size); size != "" {
		n, err := strconv.Atoi(size)
		switch {
		case err != nil:
			fields["size"] = "size must be a number"
		case n <= 0:
			req.Size = DefaultSize
		case n > MaxSize:
			req.Size = MaxSize
		default:
			req.Size = n
		}
	}

	if sortField = strings.TrimSpace(sortField); sortField != "" {
		req.SortField = sortField
	}
	column, ok := columns[req.SortField]
	if !ok {
		fields["sortField"] = fmt.Sprintf("cannot sort by %q", req.SortField)
	}
	req.Column = column

	if sortDirection = strings.TrimSpace(sortDirection); sortDirection != "" {
		switch Direction(strings.ToUpper(sortDirection)) {
		case Asc:
			req.Direction = Asc
		case Desc:
			req.Direction = Desc
		default:
			fields["sortDirection"] = "sortDirection must be ASC or DESC"
		}
	}

	if len(fields) > 0 {
		return Request{}, &apperr.ValidationError{Detail: "Invalid page request", Fields: fields}
	}
	return req, nil
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// NewPage builds a Page for req out of its content and the unpaged total.
func NewPage[T any](content []T, total int64, req Request) Page[T] {
	if content == nil {
		content = []T{}
	}

	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        req.Page,
		Size:          req.Size,
	}
}

// Map converts the content of a page, keeping the counters.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[R]{
		Content:       out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
	}
}
