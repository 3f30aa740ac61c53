package engine

import (
	"github.com/rshade/binderlca/internal/catalog"
)

// ComputeImpact returns the A1-A3, A4 and total emissions for m at the given dosage.
//
//	PerM3 = dosage * EF
//	A4    = distance * perKgKm * dosage * volume   (mass-based factor)
//	      = perM3Km * distance * volume            (legacy volumetric factor)
//	Total = PerM3 * volume + A4
//
// A4 is 0 when transport is excluded or the material has no factor. Any
// non-finite intermediate is clamped to 0.
func ComputeImpact(m catalog.Material, dosage float64, in DesignInputs) Impact {
	in = in.Normalized()
	dosage = nonNegative(dosage)

	perM3 := nonNegative(dosage * nonNegative(m.EF))

	var a4 float64
	if in.IncludeA4 {
		a4 = nonNegative(A4Slope(m, dosage, in.VolumeM3) * in.DistanceKm)
	}

	return Impact{
		PerM3: perM3,
		A4:    a4,
		Total: nonNegative(perM3*in.VolumeM3 + a4),
	}
}

// A4Slope returns the transport emission per km of haul for the whole element,
// in kg CO2e/km. It ignores whether A4 is included.
func A4Slope(m catalog.Material, dosage, volumeM3 float64) float64 {
	dosage = nonNegative(dosage)
	volumeM3 = nonNegative(volumeM3)
	factor := nonNegative(m.Transport.Factor())

	switch m.Transport.Kind() {
	case catalog.TransportPerKgKm:
		return nonNegative(factor * dosage * volumeM3)
	case catalog.TransportPerM3Km:
		return nonNegative(factor * volumeM3)
	case catalog.TransportNone:
		return 0
	default:
		return 0
	}
}
