package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Pagination modes and validation limits.
const (
	DefaultLimit     = 0
	MaxLimit         = 10000
	DefaultOffset    = 0
	DefaultSortOrder = "desc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit      = fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'total:asc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// PaginationParams holds CLI pagination flags and provides validation.
// Supports two pagination modes:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// These modes are mutually exclusive.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Limit is the maximum number of rows to return; 0 means all.
	Limit int

	// Offset is the number of rows to skip (offset-based mode).
	Offset int

	// Page is the 1-based page number (page-based mode).
	Page int

	// PageSize is the number of rows per page (page-based mode).
	PageSize int

	// Sort is the raw --sort expression, "field" or "field:order".
	Sort string
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Limit:  DefaultLimit,
		Offset: DefaultOffset,
	}
}

// AddFlags registers the pagination and sort flags on cmd, bound to p.
func AddFlags(cmd *cobra.Command, p *PaginationParams) {
	cmd.Flags().IntVar(&p.Limit, "limit", DefaultLimit, "maximum rows to show (0 = all)")
	cmd.Flags().IntVar(&p.Offset, "offset", DefaultOffset, "rows to skip before the first shown")
	cmd.Flags().IntVar(&p.Page, "page", 0, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "rows per page (requires --page)")
	cmd.Flags().StringVar(&p.Sort, "sort", "",
		"sort expression 'field[:asc|desc]'; fields: "+strings.Join(NewRowSorter().GetValidFields(), ", "))
}

// Validate checks if the pagination parameters are valid and consistent.
func (p PaginationParams) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if p.Limit > MaxLimit {
		return ErrInvalidLimit
	}
	if p.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if p.Page < 0 {
		return errors.New("page cannot be negative")
	}
	if p.PageSize < 0 {
		return errors.New("page-size cannot be negative")
	}

	if p.Page > 0 && p.Offset > 0 {
		return errors.New("page and offset parameters are mutually exclusive")
	}

	if p.Page == 0 && p.PageSize > 0 {
		return errors.New("page must be specified when using page-size: page must be >= 1")
	}
	if p.PageSize == 0 && p.Page > 0 {
		return errors.New("page-size must be specified when using page: page-size must be > 0")
	}

	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// A bare field sorts ascending, except reduction, which sorts best first.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", "", ErrEmptySortField
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
		if strings.EqualFold(field, "reduction") {
			order = SortOrderDesc
		}
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

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// CalculateTotalPages returns the number of pages for totalResults rows in
// page-based mode, and 0 otherwise.
func (p PaginationParams) CalculateTotalPages(totalResults int) int {
	if !p.IsPageBased() || totalResults == 0 {
		return 0
	}
	pages := totalResults / p.PageSize
	if totalResults%p.PageSize > 0 {
		pages++
	}
	return pages
}

// IsEnabled returns true if any pagination parameters are set.
func (p PaginationParams) IsEnabled() bool {
	return p.Limit > 0 || p.Page > 0 || p.PageSize > 0 || p.Offset > 0
}

// CalculateOffsetLimit returns the effective offset and limit for either mode.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		offset = (p.Page - 1) * p.PageSize
		if p.Limit > 0 {
			limit = p.Limit
		} else {
			limit = p.PageSize
		}
		return offset, limit
	}
	return p.Offset, p.Limit
}

// Apply returns the page of items selected by p. A page-based request past
// the end is moved back to the last page; an offset past the end gives an
// empty slice.
func Apply[T any](p PaginationParams, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.CalculateOffsetLimit()

	if p.IsPageBased() && offset >= len(items) {
		pageSize := p.PageSize
		if pageSize <= 0 {
			pageSize = len(items)
		}
		offset = ((len(items) - 1) / pageSize) * pageSize
	}

	if offset >= len(items) {
		return []T{}
	}

	end := offset + limit
	if limit == 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
