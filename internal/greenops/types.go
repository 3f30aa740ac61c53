package greenops

import "fmt"

// EquivalencyType is a category of everyday activity used to express a carbon mass.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText renders the type by name.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	// Label is the descriptive phrase, e.g. "miles driven".
	Label string `json:"label"`
}

// EquivalencyOutput holds all equivalencies for one carbon mass.
type EquivalencyOutput struct {
	InputKg float64             `json:"input_kg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to driving ~781 miles or charging ~18,248 smartphones".
	DisplayText string `json:"display_text"`

	// CompactText is the short form for table cells, e.g. "(≈ 781 mi, 18,248 phones)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}

// Savings compares one material's element emissions with the baseline's.
type Savings struct {
	MaterialID string  `json:"material_id"`
	Label      string  `json:"label"`
	BaselineID string  `json:"baseline_id"`
	BaselineKg float64 `json:"baseline_kg"`
	MaterialKg float64 `json:"material_kg"`

	// SavedKg is BaselineKg minus MaterialKg; negative when the material emits more.
	SavedKg float64 `json:"saved_kg"`
	// SavedPct is SavedKg as a percentage of BaselineKg; 0 when BaselineKg is 0.
	SavedPct float64 `json:"saved_pct"`

	// Equivalencies describe the absolute difference.
	Equivalencies EquivalencyOutput `json:"equivalencies"`
}

// Worse reports whether the material emits more than the baseline.
func (s Savings) Worse() bool {
	return s.SavedKg < 0
}
