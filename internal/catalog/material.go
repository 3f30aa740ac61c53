// Package catalog holds binder material records and loads them from JSON, YAML
// or TOML documents. A catalog is read once per session and never mutated.
package catalog

import (
	"math"
	"slices"
	"strings"
)

// SCM is one supplementary component of a binder.
type SCM struct {
	Type SCMType `json:"type"`
	// Code is the code as written in the catalog, kept for display of unknown types.
	Code     string  `json:"code"`
	Fraction float64 `json:"fraction"`
}

// Material is a single binder formulation.
type Material struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StrengthClass string `json:"strength_class,omitempty"`
	Standard      string `json:"standard,omitempty"`

	// ClinkerFraction is the clinker mass fraction in [0,1].
	ClinkerFraction float64 `json:"clinker_fraction"`
	SCMs            []SCM   `json:"scms,omitempty"`

	DensityKgM3       float64 `json:"density_kg_m3"`
	DefaultDosageKgM3 float64 `json:"default_dosage_kg_per_m3"`

	// EF is the A1-A3 emission factor in kg CO2e per kg binder.
	EF        float64   `json:"co2e_per_kg_binder_A1A3"`
	Transport Transport `json:"transport"`

	// ExposureClasses is empty when the material declares no compatibility list.
	ExposureClasses []string `json:"compatible_exposure_classes,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Applications    []string `json:"applications,omitempty"`
	Common          bool     `json:"common"`
}

// Label returns "Name (Strength)" or just the name when no strength class is set.
func (m Material) Label() string {
	if m.StrengthClass == "" {
		return m.Name
	}
	return m.Name + " (" + m.StrengthClass + ")"
}

// HasSCMs reports whether the material declares any supplementary components.
func (m Material) HasSCMs() bool {
	return len(m.SCMs) > 0
}

// DistinctSCMTypes returns the SCM types present, in AllSCMTypes order.
func (m Material) DistinctSCMTypes() []SCMType {
	var out []SCMType
	for _, t := range AllSCMTypes {
		for _, s := range m.SCMs {
			if s.Type == t {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// DeclaresExposure reports whether the material has a non-empty compatibility list.
func (m Material) DeclaresExposure() bool {
	return len(m.ExposureClasses) > 0
}

// SupportsExposure reports whether class is in the declared compatibility list.
// Matching ignores case and surrounding whitespace.
func (m Material) SupportsExposure(class string) bool {
	class = strings.TrimSpace(class)
	for _, c := range m.ExposureClasses {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias catalog slices.
func (m Material) Clone() Material {
	m.SCMs = slices.Clone(m.SCMs)
	m.ExposureClasses = slices.Clone(m.ExposureClasses)
	m.Applications = slices.Clone(m.Applications)
	return m
}

// isUsable reports whether v is a finite, non-negative number.
func isUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// clampFraction limits v to [0,1]; NaN becomes 0.
func clampFraction(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
