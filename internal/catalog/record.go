package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Severity grades a load issue.
type Severity string

const (
	// SeverityWarning marks a record that was kept with a substituted value.
	SeverityWarning Severity = "warning"
	// SeverityError marks a record that was dropped.
	SeverityError Severity = "error"
)

// Issue describes a problem found in one catalog record.
type Issue struct {
	Source   string   `json:"source"`
	Index    int      `json:"index"`
	ID       string   `json:"id,omitempty"`
	Field    string   `json:"field"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String implements fmt.Stringer.
func (i Issue) String() string {
	who := i.ID
	if who == "" {
		who = fmt.Sprintf("#%d", i.Index)
	}
	return fmt.Sprintf("%s: %s %s [%s]: %s", i.Source, who, i.Field, i.Severity, i.Message)
}

// Report collects load issues across all catalog sources.
type Report struct {
	Sources []string `json:"sources"`
	Loaded  int      `json:"loaded"`
	Dropped int      `json:"dropped"`
	Issues  []Issue  `json:"issues,omitempty"`
}

// HasIssues reports whether any issue was recorded.
func (r Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// scmRecord mirrors one entry of the "scms" list.
type scmRecord struct {
	Type     string   `json:"type"     yaml:"type"     toml:"type"`
	Fraction *float64 `json:"fraction" yaml:"fraction" toml:"fraction"`
}

// materialRecord is the on-disk shape of a material. Field names follow the
// published dataset; optional numbers are pointers so absence is detectable.
type materialRecord struct {
	ID            string `json:"id"             yaml:"id"             toml:"id"`
	Name          string `json:"name"           yaml:"name"           toml:"name"`
	CementType    string `json:"cement_type"    yaml:"cement_type"    toml:"cement_type"`
	StrengthClass string `json:"strength_class" yaml:"strength_class" toml:"strength_class"`
	Standard      string `json:"standard"       yaml:"standard"       toml:"standard"`

	ClinkerFraction *float64    `json:"clinker_fraction" yaml:"clinker_fraction" toml:"clinker_fraction"`
	SCMs            []scmRecord `json:"scms"             yaml:"scms"             toml:"scms"`

	Density       *float64 `json:"density_kg_m3"            yaml:"density_kg_m3"            toml:"density_kg_m3"`
	DefaultDosage *float64 `json:"default_dosage_kg_per_m3" yaml:"default_dosage_kg_per_m3" toml:"default_dosage_kg_per_m3"`
	EF            *float64 `json:"co2e_per_kg_binder_A1A3"  yaml:"co2e_per_kg_binder_A1A3"  toml:"co2e_per_kg_binder_A1A3"`

	TransportPerKgKm *float64 `json:"transport_ef_kg_per_kg_km" yaml:"transport_ef_kg_per_kg_km" toml:"transport_ef_kg_per_kg_km"`
	TransportPerM3Km *float64 `json:"transport_ef_kg_per_m3_km" yaml:"transport_ef_kg_per_m3_km" toml:"transport_ef_kg_per_m3_km"`

	ExposureClasses []string `json:"compatible_exposure_classes" yaml:"compatible_exposure_classes" toml:"compatible_exposure_classes"`
	Notes           string   `json:"notes"                       yaml:"notes"                       toml:"notes"`
	Applications    []string `json:"applications"                yaml:"applications"                toml:"applications"`
	IsCommon        *bool    `json:"is_common"                   yaml:"is_common"                   toml:"is_common"`
	Common          *bool    `json:"common"                      yaml:"common"                      toml:"common"`
}

// recordConverter turns records into materials and accumulates issues.
type recordConverter struct {
	source string
	issues []Issue
}

func (c *recordConverter) add(index int, id, field string, sev Severity, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Source:   c.source,
		Index:    index,
		ID:       id,
		Field:    field,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

// convert returns the material for rec, or false when the record must be dropped.
//
//nolint:funlen,gocognit // One linear pass over the record's fields.
func (c *recordConverter) convert(index int, rec materialRecord) (Material, bool) {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		c.add(index, "", "id", SeverityError, "missing id, record dropped")
		return Material{}, false
	}

	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = strings.TrimSpace(rec.CementType)
	}
	if name == "" {
		c.add(index, id, "name", SeverityError, "missing name, record dropped")
		return Material{}, false
	}

	if rec.EF == nil || math.IsNaN(*rec.EF) || math.IsInf(*rec.EF, 0) {
		c.add(index, id, "co2e_per_kg_binder_A1A3", SeverityError, "missing or non-finite emission factor, record dropped")
		return Material{}, false
	}

	m := Material{
		ID:            id,
		Name:          name,
		StrengthClass: strings.TrimSpace(rec.StrengthClass),
		Standard:      strings.TrimSpace(rec.Standard),
		EF:            *rec.EF,
		Notes:         rec.Notes,
		Transport:     resolveTransport(rec.TransportPerKgKm, rec.TransportPerM3Km),
	}

	if m.EF < 0 {
		c.add(index, id, "co2e_per_kg_binder_A1A3", SeverityWarning, "negative emission factor %g clamped to 0", m.EF)
		m.EF = 0
	}

	m.ClinkerFraction = c.fraction(index, id, "clinker_fraction", rec.ClinkerFraction)
	m.DensityKgM3 = c.nonNegative(index, id, "density_kg_m3", rec.Density)
	m.DefaultDosageKgM3 = c.nonNegative(index, id, "default_dosage_kg_per_m3", rec.DefaultDosage)

	for j, s := range rec.SCMs {
		t, known := ParseSCMType(s.Type)
		if !known {
			c.add(index, id, fmt.Sprintf("scms[%d].type", j), SeverityWarning, "unknown SCM code %q treated as Other", s.Type)
		}
		frac := 0.0
		if s.Fraction != nil {
			frac = clampFraction(*s.Fraction)
			if frac != *s.Fraction {
				c.add(index, id, fmt.Sprintf("scms[%d].fraction", j), SeverityWarning, "fraction %g clamped to %g", *s.Fraction, frac)
			}
		}
		m.SCMs = append(m.SCMs, SCM{Type: t, Code: strings.TrimSpace(s.Type), Fraction: frac})
	}

	if rec.TransportPerKgKm != nil && !isUsable(*rec.TransportPerKgKm) {
		c.add(index, id, "transport_ef_kg_per_kg_km", SeverityWarning, "invalid transport factor %g ignored", *rec.TransportPerKgKm)
	}
	if rec.TransportPerM3Km != nil && !isUsable(*rec.TransportPerM3Km) {
		c.add(index, id, "transport_ef_kg_per_m3_km", SeverityWarning, "invalid transport factor %g ignored", *rec.TransportPerM3Km)
	}

	m.ExposureClasses = cleanStrings(rec.ExposureClasses)
	m.Applications = cleanStrings(rec.Applications)

	switch {
	case rec.IsCommon != nil:
		m.Common = *rec.IsCommon
	case rec.Common != nil:
		m.Common = *rec.Common
	}

	return m, true
}

// fraction reads an optional [0,1] value, substituting 0 when absent.
func (c *recordConverter) fraction(index int, id, field string, v *float64) float64 {
	if v == nil {
		c.add(index, id, field, SeverityWarning, "missing value, using 0")
		return 0
	}
	out := clampFraction(*v)
	if out != *v {
		c.add(index, id, field, SeverityWarning, "value %g clamped to %g", *v, out)
	}
	return out
}

// nonNegative reads an optional non-negative value, substituting 0 when absent or invalid.
func (c *recordConverter) nonNegative(index int, id, field string, v *float64) float64 {
	if v == nil {
		c.add(index, id, field, SeverityWarning, "missing value, using 0")
		return 0
	}
	if !isUsable(*v) {
		c.add(index, id, field, SeverityWarning, "invalid value %g, using 0", *v)
		return 0
	}
	return *v
}

// cleanStrings trims entries and drops empty ones; it returns nil for an empty result.
func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
