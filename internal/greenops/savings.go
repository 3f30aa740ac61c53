package greenops

import (
	"fmt"
	"math"

	"github.com/rshade/binderlca/internal/engine"
)

// SavingsVsBaseline compares the element total of materialID with the
// baseline material's total in the same row set.
func SavingsVsBaseline(rows []engine.Row, baseline engine.Baseline, materialID string) (Savings, error) {
	if baseline.MaterialID == "" {
		return Savings{}, ErrNoBaseline
	}

	var base, target *engine.Row
	for i := range rows {
		if rows[i].ID() == baseline.MaterialID {
			base = &rows[i]
		}
		if rows[i].ID() == materialID {
			target = &rows[i]
		}
	}
	if base == nil {
		return Savings{}, fmt.Errorf("%w: baseline %q", ErrUnknownMaterial, baseline.MaterialID)
	}
	if target == nil {
		return Savings{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, materialID)
	}

	return SavingsBetween(*base, *target)
}

// SavingsBetween compares target with base at element level.
func SavingsBetween(base, target engine.Row) (Savings, error) {
	s := Savings{
		MaterialID: target.ID(),
		Label:      target.Material.Label(),
		BaselineID: base.ID(),
		BaselineKg: base.Total,
		MaterialKg: target.Total,
		SavedKg:    base.Total - target.Total,
	}
	if base.Total > 0 {
		s.SavedPct = s.SavedKg / base.Total * 100
	}

	eq, err := Calculate(math.Abs(s.SavedKg))
	if err != nil {
		return Savings{}, fmt.Errorf("equivalencies for %s: %w", target.ID(), err)
	}
	s.Equivalencies = eq
	return s, nil
}
