package engine

import (
	"regexp"

	"github.com/rshade/binderlca/internal/catalog"
)

// ordinaryName matches plain Portland cement names such as "CEM I" or "cem i 52.5".
var ordinaryName = regexp.MustCompile(`(?i)^CEM\s*I\b`)

// IsOrdinary reports whether m counts as an ordinary binder: it has no
// supplementary components or its name is a CEM I designation.
func IsOrdinary(m catalog.Material) bool {
	return !m.HasSCMs() || ordinaryName.MatchString(m.Name)
}

// SelectBaseline picks the ordinary material with the highest EF. When the
// catalog has no ordinary material, the highest EF overall is used. Ties go to
// the first material in catalog order. It returns false for an empty catalog.
//
// The baseline is always chosen from the full catalog, never from a filtered view.
func SelectBaseline(materials []catalog.Material) (Baseline, bool) {
	if len(materials) == 0 {
		return Baseline{}, false
	}

	best := -1
	for i, m := range materials {
		if !IsOrdinary(m) {
			continue
		}
		if best < 0 || nonNegative(m.EF) > nonNegative(materials[best].EF) {
			best = i
		}
	}
	if best < 0 {
		for i, m := range materials {
			if best < 0 || nonNegative(m.EF) > nonNegative(materials[best].EF) {
				best = i
			}
		}
	}

	m := materials[best]
	return Baseline{
		MaterialID: m.ID,
		EF:         nonNegative(m.EF),
		Label:      m.Label(),
	}, true
}

// Available reports whether the baseline was established.
func (b Baseline) Available() bool {
	return b.MaterialID != "" && b.EF > 0
}

// ReductionFor returns the percentage reduction of ef relative to the baseline.
// Positive is better than baseline. Without a usable baseline it returns 0.
func (b Baseline) ReductionFor(ef float64) float64 {
	if !b.Available() || !isFinite(ef) {
		return 0
	}
	return nonFinite0((b.EF - ef) / b.EF * 100)
}

func nonFinite0(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
