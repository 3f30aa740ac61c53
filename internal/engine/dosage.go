package engine

import (
	"strings"

	"github.com/rshade/binderlca/internal/catalog"
)

// strengthDosage maps nominal concrete strength classes to a typical binder
// dosage in kg/m3.
//
//nolint:gochecknoglobals // Fixed lookup table.
var strengthDosage = map[string]float64{
	"C20/25": 300,
	"C25/30": 320,
	"C30/37": 330,
	"C35/45": 340,
	"C40/50": 350,
	"C45/55": 360,
	"C50/60": 370,
}

// StrengthClasses lists the strength classes known to the dosage table, weakest first.
func StrengthClasses() []string {
	return []string{"C20/25", "C25/30", "C30/37", "C35/45", "C40/50", "C45/55", "C50/60"}
}

// StrengthDosage returns the typical dosage for a concrete strength class.
// Lookup ignores case and whitespace, so "c30 / 37" finds C30/37.
func StrengthDosage(class string) (float64, bool) {
	key := strings.ToUpper(strings.Join(strings.Fields(class), ""))
	v, ok := strengthDosage[key]
	return v, ok
}

// ResolveDosage returns the binder dosage in kg/m3 for m under in.
//
// perCement: a finite, non-negative override wins, then the material default
// when positive, then the strength table.
// global: the global dosage when positive, then the strength table, then the
// material default.
// The chain always ends at 0, so the result is finite and never negative.
func ResolveDosage(m catalog.Material, in DesignInputs) float64 {
	if in.Policy == PolicyPerCement {
		if v, ok := in.Override(m.ID); ok && isFinite(v) && v >= 0 {
			return v
		}
		if d := m.DefaultDosageKgM3; isFinite(d) && d > 0 {
			return d
		}
		if v, ok := StrengthDosage(in.ConcreteStrength); ok {
			return v
		}
		return 0
	}

	if g := in.GlobalDosage; isFinite(g) && g > 0 {
		return g
	}
	if v, ok := StrengthDosage(in.ConcreteStrength); ok {
		return v
	}
	return nonNegative(m.DefaultDosageKgM3)
}
