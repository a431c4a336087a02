// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import (
	"errors"
	"math"
)

// PageSize is the fixed number of items per page
const PageSize = 10

// ErrInvalidPage reports a page number outside [1, num_pages]
var ErrInvalidPage = errors.New("Invalid page number.")

// Page is one slice of an ordered result set plus its page metadata
type Page[T any] struct {
	Data        []T  `json:"data"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
	NumPages    int  `json:"num_pages"`
	CurrentPage int  `json:"current_page"`
}

// NumPages reports the page count for a total item count. An empty set
// still has one (empty) page, so page 1 of an empty feed is valid.
func NumPages(total int) int {
	if total == 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(PageSize)))
}

// Paginate slices items into the requested 1-based page. Page numbers
// outside [1, NumPages] return ErrInvalidPage.
func Paginate[T any](items []T, page int) (*Page[T], error) {
	numPages := NumPages(len(items))
	if page < 1 || page > numPages {
		return nil, ErrInvalidPage
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	data := items[start:end]
	if data == nil {
		data = []T{}
	}

	return &Page[T]{
		Data:        data,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
		NumPages:    numPages,
		CurrentPage: page,
	}, nil
}
