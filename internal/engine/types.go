// Package engine computes embodied-carbon rows for binder materials. Every
// function here is a pure function of its inputs: a catalog snapshot and an
// immutable DesignInputs value go in, a freshly built row set comes out.
package engine

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/binderlca/internal/catalog"
)

// Policy selects how the dosage of each material is resolved.
type Policy string

const (
	// PolicyGlobal applies one dosage to every material.
	PolicyGlobal Policy = "global"
	// PolicyPerCement uses a per-material override or the material's own default.
	PolicyPerCement Policy = "perCement"
)

// ParsePolicy accepts "global" and "perCement" in any case, with or without a separator.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "global":
		return PolicyGlobal, nil
	case "percement", "per-cement", "per_cement":
		return PolicyPerCement, nil
	default:
		return "", fmt.Errorf("unknown dosage policy %q (want global or perCement)", s)
	}
}

// Default design inputs.
const (
	DefaultExposureClass    = "XC2"
	DefaultVolumeM3         = 100.0
	DefaultDistanceKm       = 0.0
	DefaultGlobalDosage     = 300.0
	DefaultConcreteStrength = "C25/30"
)

// DesignInputs is one set of user-chosen design parameters. It is a value type;
// the override helpers return modified copies and never touch a shared map.
type DesignInputs struct {
	ExposureClass    string             `json:"exposure_class"`
	VolumeM3         float64            `json:"volume_m3"`
	DistanceKm       float64            `json:"distance_km"`
	IncludeA4        bool               `json:"include_a4"`
	Policy           Policy             `json:"dosage_mode"`
	GlobalDosage     float64            `json:"global_dosage"`
	ConcreteStrength string             `json:"concrete_strength"`
	Overrides        map[string]float64 `json:"overrides,omitempty"`
}

// DefaultInputs returns the inputs a fresh session starts with.
func DefaultInputs() DesignInputs {
	return DesignInputs{
		ExposureClass:    DefaultExposureClass,
		VolumeM3:         DefaultVolumeM3,
		DistanceKm:       DefaultDistanceKm,
		IncludeA4:        true,
		Policy:           PolicyGlobal,
		GlobalDosage:     DefaultGlobalDosage,
		ConcreteStrength: DefaultConcreteStrength,
	}
}

// WithOverride returns a copy of in with the dosage override for id set to kg.
func (in DesignInputs) WithOverride(id string, kg float64) DesignInputs {
	out := in
	out.Overrides = maps.Clone(in.Overrides)
	if out.Overrides == nil {
		out.Overrides = make(map[string]float64, 1)
	}
	out.Overrides[id] = kg
	return out
}

// WithoutOverride returns a copy of in with the dosage override for id removed.
func (in DesignInputs) WithoutOverride(id string) DesignInputs {
	out := in
	out.Overrides = maps.Clone(in.Overrides)
	delete(out.Overrides, id)
	return out
}

// ParseOverride parses a dosage override written "id=kg" or "id:kg".
func ParseOverride(s string) (string, float64, error) {
	i := strings.LastIndexAny(s, "=:")
	if i <= 0 {
		return "", 0, fmt.Errorf("invalid dosage override %q (want id=kg)", s)
	}
	id := strings.TrimSpace(s[:i])
	kg, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
	if err != nil || id == "" || !isFinite(kg) || kg < 0 {
		return "", 0, fmt.Errorf("invalid dosage override %q (want id=kg with kg >= 0)", s)
	}
	return id, kg, nil
}

// Override returns the override for id, if one is set.
func (in DesignInputs) Override(id string) (float64, bool) {
	v, ok := in.Overrides[id]
	return v, ok
}

// Normalized returns a copy with non-finite or negative volume and distance
// clamped to 0, an unknown policy mapped to global, and unusable overrides removed.
func (in DesignInputs) Normalized() DesignInputs {
	out := in
	out.VolumeM3 = nonNegative(in.VolumeM3)
	out.DistanceKm = nonNegative(in.DistanceKm)
	if out.Policy != PolicyPerCement {
		out.Policy = PolicyGlobal
	}
	out.ExposureClass = strings.TrimSpace(in.ExposureClass)
	out.ConcreteStrength = strings.TrimSpace(in.ConcreteStrength)
	if len(in.Overrides) > 0 {
		out.Overrides = make(map[string]float64, len(in.Overrides))
		for id, v := range in.Overrides {
			if isFinite(v) && v >= 0 {
				out.Overrides[id] = v
			}
		}
	}
	return out
}

// Baseline is the reference material reductions are measured against.
// The zero value means no baseline is available.
type Baseline struct {
	MaterialID string  `json:"material_id"`
	EF         float64 `json:"ef"`
	Label      string  `json:"label"`
}

// Impact is the carbon result for one material under one set of inputs.
type Impact struct {
	// PerM3 is the A1-A3 emission per cubic metre of concrete, in kg CO2e.
	PerM3 float64 `json:"a1a3_kg_per_m3"`
	// A4 is the transport emission for the whole element, in kg CO2e.
	A4 float64 `json:"a4_kg"`
	// Total is PerM3 scaled to the element volume plus A4.
	Total float64 `json:"total_kg"`
}

// Row is the computed result for one material.
type Row struct {
	Material           catalog.Material `json:"material"`
	Dosage             float64          `json:"dosage_kg_per_m3"`
	PerM3              float64          `json:"a1a3_kg_per_m3"`
	A4                 float64          `json:"a4_kg"`
	Total              float64          `json:"total_kg"`
	ExposureCompatible bool             `json:"exposure_compatible"`
	Tags               []string         `json:"tags"`
	Reduction          float64          `json:"reduction_pct"`
	Band               Band             `json:"band"`
}

// ID returns the material ID of the row.
func (r Row) ID() string {
	return r.Material.ID
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonNegative maps NaN, infinities and negative values to 0.
func nonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}
