package pagination

import (
	"fmt"
	"strings"

	"github.com/rshade/binderlca/internal/engine"
)

// RowSorter validates sort expressions against the engine's row columns.
type RowSorter struct {
	validFields map[string]engine.SortKey
}

// NewRowSorter creates a RowSorter accepting every engine sort key plus the
// "cement" alias of name.
func NewRowSorter() *RowSorter {
	fields := make(map[string]engine.SortKey, len(engine.SortKeys())+1)
	for _, k := range engine.SortKeys() {
		fields[string(k)] = k
	}
	fields["cement"] = engine.SortName
	return &RowSorter{validFields: fields}
}

// IsValidField checks if the field is valid for sorting.
func (s *RowSorter) IsValidField(field string) bool {
	_, ok := s.validFields[strings.ToLower(field)]
	return ok
}

// GetValidFields returns the canonical sort fields in column order.
func (s *RowSorter) GetValidFields() []string {
	keys := engine.SortKeys()
	fields := make([]string, len(keys))
	for i, k := range keys {
		fields[i] = string(k)
	}
	return fields
}

// Query applies the --sort expression to q after validating p. Paging is
// left to Apply so page-based requests can be clamped to the last page.
// An empty sort expression keeps q's sort.
func (s *RowSorter) Query(p PaginationParams, q engine.Query) (engine.Query, error) {
	if err := p.Validate(); err != nil {
		return q, err
	}

	if strings.TrimSpace(p.Sort) != "" {
		field, order, err := ParseSort(p.Sort)
		if err != nil {
			return q, err
		}
		key, ok := s.validFields[strings.ToLower(field)]
		if !ok {
			return q, fmt.Errorf("%w: %q (valid: %s)",
				ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
		}
		q.Sort = key
		q.Dir = engine.SortDir(order)
	}

	return q, nil
}
