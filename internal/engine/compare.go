package engine

import (
	"slices"
)

// MaxCompare is the most materials a compare set can hold.
const MaxCompare = 3

// CompareSet is an ordered set of up to MaxCompare material IDs. Its methods
// return new sets; a CompareSet is never modified in place.
type CompareSet struct {
	ids []string
}

// NewCompareSet builds a set from ids, dropping blanks and duplicates and
// keeping at most MaxCompare entries.
func NewCompareSet(ids ...string) CompareSet {
	var s CompareSet
	for _, id := range ids {
		if id == "" || s.Contains(id) {
			continue
		}
		if s.Full() {
			break
		}
		s.ids = append(s.ids, id)
	}
	return s
}

// IDs returns the IDs in insertion order.
func (s CompareSet) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of IDs.
func (s CompareSet) Len() int {
	return len(s.ids)
}

// Full reports whether the set already holds MaxCompare IDs.
func (s CompareSet) Full() bool {
	return len(s.ids) >= MaxCompare
}

// Contains reports whether id is in the set.
func (s CompareSet) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Toggle removes id when present and appends it otherwise. Adding to a full
// set returns the set unchanged.
func (s CompareSet) Toggle(id string) CompareSet {
	if s.Contains(id) {
		return s.Remove(id)
	}
	if s.Full() || id == "" {
		return s
	}
	return CompareSet{ids: append(slices.Clone(s.ids), id)}
}

// Remove returns the set without id.
func (s CompareSet) Remove(id string) CompareSet {
	return CompareSet{ids: slices.DeleteFunc(slices.Clone(s.ids), func(x string) bool { return x == id })}
}

// Replace swaps oldID for newID in place. When newID is already present or
// oldID is absent the set is returned unchanged.
func (s CompareSet) Replace(oldID, newID string) CompareSet {
	if newID == "" || s.Contains(newID) {
		return s
	}
	i := slices.Index(s.ids, oldID)
	if i < 0 {
		return s
	}
	ids := slices.Clone(s.ids)
	ids[i] = newID
	return CompareSet{ids: ids}
}

// Comparison is one column of a side-by-side view.
type Comparison struct {
	Row Row `json:"row"`
	// IsBaseline marks the baseline material.
	IsBaseline bool `json:"is_baseline"`
	// IsBest marks the chosen row with the lowest total.
	IsBest bool `json:"is_best"`
	// DeltaVsBestKg is Total minus the best chosen total; 0 for the best row.
	DeltaVsBestKg float64 `json:"delta_vs_best_kg"`
	// DeltaVsBaselinePct is the reduction relative to the baseline EF.
	DeltaVsBaselinePct float64 `json:"delta_vs_baseline_pct"`
}

// SideBySide returns the rows chosen by set, in set order, annotated with
// their distance from the best chosen row and from the baseline. IDs that are
// not in rows are skipped.
func SideBySide(rows []Row, set CompareSet, baseline Baseline) []Comparison {
	chosen := rowsByID(rows, set.ids)
	if len(chosen) == 0 {
		return []Comparison{}
	}

	best := 0
	for i, r := range chosen {
		if r.Total < chosen[best].Total {
			best = i
		}
	}

	out := make([]Comparison, len(chosen))
	for i, r := range chosen {
		out[i] = Comparison{
			Row:                r,
			IsBaseline:         baseline.MaterialID != "" && r.ID() == baseline.MaterialID,
			IsBest:             i == best,
			DeltaVsBestKg:      r.Total - chosen[best].Total,
			DeltaVsBaselinePct: r.Reduction,
		}
	}
	return out
}
