package engine

// Band groups a reduction percentage for colouring.
type Band string

const (
	// BandWorse is a reduction of 0% or less.
	BandWorse Band = "worse"
	// BandMarginal is above 0% up to 10%.
	BandMarginal Band = "marginal"
	// BandGood is above 10% up to 20%.
	BandGood Band = "good"
	// BandGreat is above 20%.
	BandGreat Band = "great"
)

// Band thresholds in percent.
const (
	marginalUpTo = 10.0
	goodUpTo     = 20.0
)

// BandFor returns the band of a reduction percentage. NaN counts as worse.
func BandFor(reduction float64) Band {
	switch {
	case !(reduction > 0):
		return BandWorse
	case reduction <= marginalUpTo:
		return BandMarginal
	case reduction <= goodUpTo:
		return BandGood
	default:
		return BandGreat
	}
}
