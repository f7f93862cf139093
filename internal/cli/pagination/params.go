package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults and sort orders.
const (
	DefaultLimit     = 0
	DefaultOffset    = 0
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"

	// sortPartsMax is the number of parts in "field:order".
	sortPartsMax = 2
)

// Validation errors.
var (
	ErrNegativeLimit        = errors.New("limit cannot be negative")
	ErrNegativeOffset       = errors.New("offset cannot be negative")
	ErrNegativePage         = errors.New("page cannot be negative")
	ErrNegativePageSize     = errors.New("page-size cannot be negative")
	ErrMixedPaginationModes = errors.New("page and offset parameters are mutually exclusive")
	ErrPageWithoutSize      = errors.New("page-size must be specified when using page")
	ErrPageSizeWithoutPage  = errors.New("page must be specified when using page-size")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// Params holds the pagination flags of a list invocation.
// A zero Limit means "no limit".
type Params struct {
	Limit  int
	Offset int

	// Page is 1-based; 0 leaves page-based mode off.
	Page     int
	PageSize int
}

// Validate checks bounds and that the two modes are not mixed.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0:
		return ErrNegativeLimit
	case p.Offset < 0:
		return ErrNegativeOffset
	case p.Page < 0:
		return ErrNegativePage
	case p.PageSize < 0:
		return ErrNegativePageSize
	}

	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutSize
	}
	if p.Page == 0 && p.PageSize > 0 {
		return ErrPageSizeWithoutPage
	}

	return nil
}

// IsPageBased reports whether page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// OffsetLimit returns the effective offset and limit. A zero limit means the
// rest of the results.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the page of items selected by p. Page-based requests past the
// end are capped to the last page; offset-based requests past the end are empty.
func Apply[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.OffsetLimit()

	if p.IsPageBased() && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}

	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 {
		end = min(offset+limit, len(items))
	}

	return items[offset:end]
}

// ParseSort parses "field" or "field:order". An empty string keeps the
// server order and returns an empty field.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
