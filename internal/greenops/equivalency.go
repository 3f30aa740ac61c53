// Package greenops turns element-level carbon results into savings against
// the baseline and relatable everyday equivalencies, using EPA factors.
package greenops

import (
	"fmt"
	"math"
)

// Calculate returns the equivalencies of kg CO2e. Values under
// MinEquivalencyThresholdKg give an empty output without error.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	if math.IsInf(miles, 0) || math.IsInf(phones, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: milesFormatted, Label: "miles driven"},
		{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: phonesFormatted, Label: "smartphones charged"},
	}
	if kg >= TreeThresholdKg {
		trees := kg / EPATreeSeedlingFactor
		homeDays := kg / EPAHomeDayFactor
		results = append(results,
			EquivalencyResult{
				Type: EquivalencyTreeSeedlings, Value: trees,
				FormattedValue: formatEquivalencyValue(trees), Label: "tree seedlings grown for 10 years",
			},
			EquivalencyResult{
				Type: EquivalencyHomeDays, Value: homeDays,
				FormattedValue: formatEquivalencyValue(homeDays), Label: "days of home electricity",
			},
		)
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			milesFormatted, phonesFormatted),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones)", milesFormatted, phonesFormatted),
	}, nil
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
