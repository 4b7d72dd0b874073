package domain

import (
	"fmt"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortOrder orders a listing by one entity property.
type SortOrder struct {
	Property  string
	Direction Direction
}

// ParseSortOrder parses "property" or "property,direction" as sent in a sort query parameter.
func ParseSortOrder(raw string) (SortOrder, error) {
	parts := strings.Split(raw, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" {
		return SortOrder{}, fmt.Errorf("%w: empty sort property", ErrInvalidSort)
	}
	order := SortOrder{Property: property, Direction: Asc}
	if len(parts) > 1 {
		switch Direction(strings.ToLower(strings.TrimSpace(parts[1]))) {
		case Asc, "":
		case Desc:
			order.Direction = Desc
		default:
			return SortOrder{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, parts[1])
		}
	}
	return order, nil
}

// PageRequest asks for the zero-based page Page of Size elements.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

func PageOf(page, size int, sort ...SortOrder) PageRequest {
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Offset is the index of the first element of the page. Call it only for pages that are not
// past the data; see IsBeyond.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// IsBeyond reports whether the page starts at or after the last of total elements. It avoids
// Page*Size, which overflows for very large page indexes.
func (r PageRequest) IsBeyond(total int64) bool {
	if r.Size < 1 {
		return true
	}
	pages := (total + int64(r.Size) - 1) / int64(r.Size)
	return int64(r.Page) >= pages
}

func (r PageRequest) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("%w: page index must not be less than zero", ErrInvalidArgument)
	}
	if r.Size < 1 {
		return fmt.Errorf("%w: page size must not be less than one", ErrInvalidArgument)
	}
	return nil
}

// Page is one slice of an ordered result set together with the size of the whole set.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		Number:           req.Page,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}

// MapPage converts the content of p with fn, keeping the paging metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	content := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[R]{
		Content:          content,
		Number:           p.Number,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		NumberOfElements: len(content),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(content) == 0,
	}
}
