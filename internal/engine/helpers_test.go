package engine_test

import (
	"github.com/rshade/binderlca/internal/catalog"
)

// opc returns a plain CEM I material with a mass-based transport factor.
func opc(id string, ef float64) catalog.Material {
	return catalog.Material{
		ID:                id,
		Name:              "CEM I",
		StrengthClass:     "42.5N",
		ClinkerFraction:   0.95,
		DensityKgM3:       3150,
		DefaultDosageKgM3: 320,
		EF:                ef,
		Transport:         catalog.PerKgKm(0.00008),
		Common:            true,
	}
}

// blend returns a material with the given SCM types at 10% each.
func blend(id, name string, ef float64, types ...catalog.SCMType) catalog.Material {
	m := catalog.Material{
		ID:                id,
		Name:              name,
		ClinkerFraction:   0.7,
		DensityKgM3:       3000,
		DefaultDosageKgM3: 330,
		EF:                ef,
	}
	for _, t := range types {
		m.SCMs = append(m.SCMs, catalog.SCM{Type: t, Code: t.Code(), Fraction: 0.1})
	}
	return m
}

// sampleCatalog has two ordinary cements, two blends and one material
// without any exposure declaration.
func sampleCatalog() []catalog.Material {
	a := opc("opc-a", 0.85)
	a.ExposureClasses = []string{"XC1", "XC2", "XS1"}
	b := opc("opc-b", 0.90)
	b.StrengthClass = "52.5R"
	b.ExposureClasses = []string{"XC1", "XC2"}

	slag := blend("slag", "CEM III/A", 0.45, catalog.SCMSlag)
	slag.ExposureClasses = []string{"XC1", "XS1"}
	slag.Notes = "Low heat, good chloride resistance"
	slag.Common = true

	composite := blend("composite", "CEM II/B-M", 0.62, catalog.SCMSlag, catalog.SCMLimestone)
	composite.Transport = catalog.PerM3Km(0.025)
	composite.ExposureClasses = []string{"XC2"}

	lc3 := blend("lc3", "LC3-50", 0.49, catalog.SCMCalcinedClay, catalog.SCMLimestone)
	lc3.StrengthClass = "42.5N"

	return []catalog.Material{a, b, slag, composite, lc3}
}
