package greenops

// EPA greenhouse gas equivalency factors, 2024 edition, in kg CO2e per unit of
// activity. An equivalency is kg CO2e divided by the factor.
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
const (
	// EPAMilesDrivenFactor is kg CO2e per mile of an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per full smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e taken up by one urban tree seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity use.
	EPAHomeDayFactor = 18.3
)

// Mass units used for display.
const (
	// KgPerTonne converts tonnes to kilograms.
	KgPerTonne = 1000.0

	// TonneDisplayThresholdKg is where FormatMass switches from kg to t.
	TonneDisplayThresholdKg = 10_000.0
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest saving that gets equivalencies.
	// Below it the numbers would read as fractions of a mile.
	MinEquivalencyThresholdKg = 1.0

	// TreeThresholdKg is the smallest saving that also lists tree seedlings.
	TreeThresholdKg = EPATreeSeedlingFactor

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
