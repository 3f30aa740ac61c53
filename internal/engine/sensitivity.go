package engine

import (
	"slices"
	"sort"
)

// Distance sensitivity defaults.
const (
	DefaultSensitivityMaxKm = 300.0
	// DefaultSensitivityPlotted is how many rows are plotted when none are chosen.
	DefaultSensitivityPlotted = 5

	fineStepKm      = 5.0
	coarseStepKm    = 10.0
	fineStepUpToKm  = 200.0
	maxSensitivityN = 10000
)

// SensitivityPoint is the element emission at one haul distance.
type SensitivityPoint struct {
	DistanceKm float64 `json:"distance_km"`
	A4         float64 `json:"a4_kg"`
	Total      float64 `json:"total_kg"`
}

// SensitivitySeries is the total emission of one material as a line over distance:
// Total(d) = Base + SlopeKgPerKm * d.
type SensitivitySeries struct {
	MaterialID   string             `json:"material_id"`
	Label        string             `json:"label"`
	Base         float64            `json:"base_kg"`
	SlopeKgPerKm float64            `json:"slope_kg_per_km"`
	Points       []SensitivityPoint `json:"points"`
}

// SensitivityDistances returns the distance axis from 0 to maxKm. A stepKm of
// 0 or less picks 5 km up to 200 km and 10 km beyond. maxKm is always the last point.
func SensitivityDistances(maxKm, stepKm float64) []float64 {
	maxKm = sensitivityMaxKm(maxKm)
	if !isFinite(stepKm) || stepKm <= 0 {
		stepKm = coarseStepKm
		if maxKm <= fineStepUpToKm {
			stepKm = fineStepKm
		}
	}
	if maxKm/stepKm > maxSensitivityN {
		stepKm = maxKm / maxSensitivityN
	}

	var out []float64
	for i := 0; ; i++ {
		d := float64(i) * stepKm
		if d > maxKm {
			break
		}
		out = append(out, d)
	}
	if out[len(out)-1] != maxKm {
		out = append(out, maxKm)
	}
	return out
}

func sensitivityMaxKm(maxKm float64) float64 {
	maxKm = nonNegative(maxKm)
	if maxKm == 0 {
		return DefaultSensitivityMaxKm
	}
	return maxKm
}

// Sensitivity returns one series per row over the distance axis. The slope
// uses the mass-based factor when the material has one; a legacy volumetric
// factor gives perM3Km * volume. Slopes are 0 when A4 is excluded.
func Sensitivity(rows []Row, in DesignInputs, maxKm, stepKm float64) []SensitivitySeries {
	in = in.Normalized()
	distances := SensitivityDistances(maxKm, stepKm)

	out := make([]SensitivitySeries, 0, len(rows))
	for _, r := range rows {
		base := nonNegative(r.PerM3 * in.VolumeM3)
		var slope float64
		if in.IncludeA4 {
			slope = A4Slope(r.Material, r.Dosage, in.VolumeM3)
		}

		points := make([]SensitivityPoint, len(distances))
		for i, d := range distances {
			a4 := nonNegative(slope * d)
			points[i] = SensitivityPoint{DistanceKm: d, A4: a4, Total: base + a4}
		}
		out = append(out, SensitivitySeries{
			MaterialID:   r.ID(),
			Label:        r.Material.Label(),
			Base:         base,
			SlopeKgPerKm: slope,
			Points:       points,
		})
	}
	return out
}

// Crossover is the haul distance at which two series have equal totals.
// Beyond it the material with the steeper slope becomes the heavier one.
type Crossover struct {
	AID        string  `json:"a_id"`
	ALabel     string  `json:"a_label"`
	BID        string  `json:"b_id"`
	BLabel     string  `json:"b_label"`
	DistanceKm float64 `json:"distance_km"`
	TotalKg    float64 `json:"total_kg"`
}

// Crossovers returns the break-even distance of every pair of series whose
// lines cross strictly between 0 and maxKm, in series pair order. Parallel
// lines never cross. A maxKm of 0 means DefaultSensitivityMaxKm.
func Crossovers(series []SensitivitySeries, maxKm float64) []Crossover {
	maxKm = sensitivityMaxKm(maxKm)

	var out []Crossover
	for i := range series {
		for j := i + 1; j < len(series); j++ {
			a, b := series[i], series[j]
			if a.SlopeKgPerKm == b.SlopeKgPerKm {
				continue
			}
			d := (b.Base - a.Base) / (a.SlopeKgPerKm - b.SlopeKgPerKm)
			if !isFinite(d) || d <= 0 || d >= maxKm {
				continue
			}
			out = append(out, Crossover{
				AID:        a.MaterialID,
				ALabel:     a.Label,
				BID:        b.MaterialID,
				BLabel:     b.Label,
				DistanceKm: d,
				TotalKg:    a.Base + a.SlopeKgPerKm*d,
			})
		}
	}
	return out
}

// SensitivityRows picks the rows to plot: the rows named in ids, in that order,
// or the lowest-total rows when ids is empty.
func SensitivityRows(rows []Row, ids []string) []Row {
	if len(ids) > 0 {
		return rowsByID(rows, ids)
	}
	sorted := slices.Clone(rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total < sorted[j].Total })
	if len(sorted) > DefaultSensitivityPlotted {
		sorted = sorted[:DefaultSensitivityPlotted]
	}
	return sorted
}

// rowsByID returns the rows with the given IDs in ids order, skipping unknown IDs.
func rowsByID(rows []Row, ids []string) []Row {
	byID := make(map[string]Row, len(rows))
	for _, r := range rows {
		byID[r.ID()] = r
	}
	out := make([]Row, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
