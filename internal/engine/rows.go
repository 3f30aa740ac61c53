package engine

import (
	"strings"

	"github.com/rshade/binderlca/internal/catalog"
)

// Tags shown for binders without supplementary components and for blends.
const (
	TagOPC       = "OPC"
	TagComposite = "Composite"
)

// ExposureCompatible reports whether m may be used for the exposure class.
// An empty class or a material without a declared list is always compatible.
func ExposureCompatible(m catalog.Material, exposureClass string) bool {
	if strings.TrimSpace(exposureClass) == "" || !m.DeclaresExposure() {
		return true
	}
	return m.SupportsExposure(exposureClass)
}

// Tags returns the display tags of m: one per distinct SCM type, "OPC" when
// there are none, and "Composite" when two or more distinct types are present.
func Tags(m catalog.Material) []string {
	types := m.DistinctSCMTypes()
	if len(types) == 0 {
		return []string{TagOPC}
	}
	tags := make([]string, 0, len(types)+1)
	for _, t := range types {
		tags = append(tags, t.Label())
	}
	if len(types) >= 2 {
		tags = append(tags, TagComposite)
	}
	return tags
}

// AssembleRow computes the full row for one material.
func AssembleRow(m catalog.Material, in DesignInputs, baseline Baseline) Row {
	dosage := ResolveDosage(m, in)
	impact := ComputeImpact(m, dosage, in)
	reduction := baseline.ReductionFor(nonNegative(m.EF))

	return Row{
		Material:           m,
		Dosage:             dosage,
		PerM3:              impact.PerM3,
		A4:                 impact.A4,
		Total:              impact.Total,
		ExposureCompatible: ExposureCompatible(m, in.ExposureClass),
		Tags:               Tags(m),
		Reduction:          reduction,
		Band:               BandFor(reduction),
	}
}

// ComputeRows builds one row per material, in catalog order.
func ComputeRows(materials []catalog.Material, in DesignInputs, baseline Baseline) []Row {
	in = in.Normalized()
	rows := make([]Row, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, AssembleRow(m, in, baseline))
	}
	return rows
}
