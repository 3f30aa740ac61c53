package engine

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Scope restricts which rows are shown.
type Scope string

const (
	// ScopeAll keeps every row.
	ScopeAll Scope = "all"
	// ScopeCompatible keeps rows compatible with the exposure class.
	ScopeCompatible Scope = "compatible"
	// ScopeCommon keeps rows whose material is flagged as commonly used.
	ScopeCommon Scope = "common"
)

// ParseScope parses a scope name; empty means all.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeCompatible:
		return ScopeCompatible, nil
	case ScopeCommon:
		return ScopeCommon, nil
	default:
		return "", fmt.Errorf("unknown scope %q (want all, compatible or common)", s)
	}
}

// SortKey names a sortable row column.
type SortKey string

// Sort keys.
const (
	SortName      SortKey = "name"
	SortStrength  SortKey = "strength"
	SortClinker   SortKey = "clinker"
	SortEF        SortKey = "ef"
	SortDosage    SortKey = "dosage"
	SortA1A3      SortKey = "a1a3"
	SortA4        SortKey = "a4"
	SortTotal     SortKey = "total"
	SortReduction SortKey = "reduction"
)

// SortKeys lists every valid sort key in column order.
func SortKeys() []SortKey {
	return []SortKey{
		SortName, SortStrength, SortClinker, SortEF, SortDosage,
		SortA1A3, SortA4, SortTotal, SortReduction,
	}
}

// ParseSortKey parses a sort key. "cement" is accepted as an alias of name.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "cement" {
		return SortName, nil
	}
	if slices.Contains(SortKeys(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortDir is the sort direction.
type SortDir string

// Sort directions.
const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// ParseSortDir parses "asc" or "desc"; empty means ascending.
func ParseSortDir(s string) (SortDir, error) {
	switch SortDir(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q (want asc or desc)", s)
	}
}

// Query selects, orders and pages rows.
type Query struct {
	Scope  Scope
	Search string
	Sort   SortKey
	Dir    SortDir
	// Offset skips rows of the sorted set before the page starts.
	Offset int
	// Limit caps the page size; 0 means no limit.
	Limit int
}

// DefaultQuery shows every row, best reduction first.
func DefaultQuery() Query {
	return Query{Scope: ScopeAll, Sort: SortReduction, Dir: Desc}
}

// View is the result of running a query.
type View struct {
	// All is the full filtered and sorted set, used for export.
	All []Row `json:"-"`
	// Page is the slice of All selected by Offset and Limit.
	Page []Row `json:"rows"`
	// Total is len(All).
	Total int `json:"total"`
	// BestID is the material ID of the first row of All.
	BestID string `json:"best_id,omitempty"`
}

// Run filters rows by scope and search text, sorts them stably and cuts the page.
// The input slice is not modified.
func Run(rows []Row, q Query) View {
	filtered := Filter(rows, q.Scope, q.Search)
	sorted := SortRows(filtered, q.Sort, q.Dir)

	v := View{All: sorted, Total: len(sorted)}
	if len(sorted) > 0 {
		v.BestID = sorted[0].ID()
	}
	v.Page = pageOf(sorted, q.Offset, q.Limit)
	return v
}

func pageOf(rows []Row, offset, limit int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []Row{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return slices.Clip(rows[offset:end])
}

// Filter keeps rows in scope whose name, notes or tags contain search.
// Matching uses Unicode case folding.
func Filter(rows []Row, scope Scope, search string) []Row {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		switch scope {
		case ScopeCompatible:
			if !r.ExposureCompatible {
				continue
			}
		case ScopeCommon:
			if !r.Material.Common {
				continue
			}
		case ScopeAll:
		}
		if needle != "" && !strings.Contains(fold.String(haystack(r)), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func haystack(r Row) string {
	return r.Material.Name + " " + r.Material.Notes + " " + strings.Join(r.Tags, " ")
}

// SortRows returns a stably sorted copy of rows. Strings compare
// lexicographically, numbers numerically. Equal keys keep their input order in
// both directions. An unknown key leaves the order unchanged.
func SortRows(rows []Row, key SortKey, dir SortDir) []Row {
	out := slices.Clone(rows)
	if out == nil {
		out = []Row{}
	}
	less := lessFor(key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFor(key SortKey) func(a, b Row) bool {
	switch key {
	case SortName:
		return func(a, b Row) bool { return a.Material.Name < b.Material.Name }
	case SortStrength:
		return func(a, b Row) bool { return a.Material.StrengthClass < b.Material.StrengthClass }
	case SortClinker:
		return func(a, b Row) bool { return a.Material.ClinkerFraction < b.Material.ClinkerFraction }
	case SortEF:
		return func(a, b Row) bool { return a.Material.EF < b.Material.EF }
	case SortDosage:
		return func(a, b Row) bool { return a.Dosage < b.Dosage }
	case SortA1A3:
		return func(a, b Row) bool { return a.PerM3 < b.PerM3 }
	case SortA4:
		return func(a, b Row) bool { return a.A4 < b.A4 }
	case SortTotal:
		return func(a, b Row) bool { return a.Total < b.Total }
	case SortReduction:
		return func(a, b Row) bool { return a.Reduction < b.Reduction }
	default:
		return nil
	}
}
