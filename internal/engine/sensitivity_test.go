package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/engine"
)

func TestSensitivityDistances(t *testing.T) {
	d := engine.SensitivityDistances(300, 0)
	require.Len(t, d, 31)
	assert.InDelta(t, 0.0, d[0], 1e-9)
	assert.InDelta(t, 10.0, d[1], 1e-9)
	assert.InDelta(t, 300.0, d[len(d)-1], 1e-9)

	d = engine.SensitivityDistances(100, 0)
	assert.Len(t, d, 21, "5 km steps up to 200 km")

	d = engine.SensitivityDistances(23, 10)
	assert.Equal(t, []float64{0, 10, 20, 23}, d, "max is always the last point")

	d = engine.SensitivityDistances(0, 0)
	assert.InDelta(t, engine.DefaultSensitivityMaxKm, d[len(d)-1], 1e-9)
}

func TestSensitivity(t *testing.T) {
	rows := sampleRows(t)
	in := inputs(100, 50, true)

	series := engine.Sensitivity(rows, in, 200, 50)
	require.Len(t, series, len(rows))

	for i, s := range series {
		r := rows[i]
		assert.Equal(t, r.ID(), s.MaterialID)
		assert.Equal(t, r.Material.Label(), s.Label)
		assert.InDelta(t, r.PerM3*in.VolumeM3, s.Base, 1e-6)
		require.Len(t, s.Points, 5)

		// At the input distance the line matches the computed row.
		for _, p := range s.Points {
			assert.InDelta(t, s.Base+s.SlopeKgPerKm*p.DistanceKm, p.Total, 1e-6)
			if p.DistanceKm == in.DistanceKm {
				assert.InDelta(t, r.A4, p.A4, 1e-6)
				assert.InDelta(t, r.Total, p.Total, 1e-6)
			}
		}
	}

	byID := map[string]engine.SensitivitySeries{}
	for _, s := range series {
		byID[s.MaterialID] = s
	}
	assert.InDelta(t, 0.00008*300*100, byID["opc-a"].SlopeKgPerKm, 1e-9)
	assert.InDelta(t, 0.025*100, byID["composite"].SlopeKgPerKm, 1e-9)
	assert.Zero(t, byID["slag"].SlopeKgPerKm, "no transport factor")
}

func TestSensitivity_A4Excluded(t *testing.T) {
	rows := sampleRows(t)
	series := engine.Sensitivity(rows, inputs(100, 50, false), 100, 0)
	for _, s := range series {
		assert.Zero(t, s.SlopeKgPerKm)
		for _, p := range s.Points {
			assert.InDelta(t, s.Base, p.Total, 1e-9)
		}
	}
}

func TestCrossovers(t *testing.T) {
	line := func(id string, base, slope float64) engine.SensitivitySeries {
		return engine.SensitivitySeries{MaterialID: id, Label: id + " label", Base: base, SlopeKgPerKm: slope}
	}

	tests := []struct {
		name   string
		series []engine.SensitivitySeries
		maxKm  float64
		want   []engine.Crossover
	}{
		{
			name:   "parallel lines",
			series: []engine.SensitivitySeries{line("a", 15000, 3), line("b", 18000, 3)},
			maxKm:  300,
		},
		{
			name:   "crossing inside the range",
			series: []engine.SensitivitySeries{line("near", 16500, 30), line("far", 18000, 0)},
			maxKm:  300,
			want: []engine.Crossover{{
				AID: "near", ALabel: "near label", BID: "far", BLabel: "far label",
				DistanceKm: 50, TotalKg: 18000,
			}},
		},
		{
			name:   "crossing outside the range",
			series: []engine.SensitivitySeries{line("a", 15000, 3), line("b", 18000, 0)},
			maxKm:  300,
		},
		{
			name:   "crossing behind the origin",
			series: []engine.SensitivitySeries{line("a", 27000, 3), line("b", 18000, 0)},
			maxKm:  300,
		},
		{
			name:   "crossing exactly at the range end",
			series: []engine.SensitivitySeries{line("a", 15000, 10), line("b", 18000, 0)},
			maxKm:  300,
		},
		{
			name:   "zero max uses the default range",
			series: []engine.SensitivitySeries{line("a", 15000, 20), line("b", 18000, 0)},
			want: []engine.Crossover{{
				AID: "a", ALabel: "a label", BID: "b", BLabel: "b label",
				DistanceKm: 150, TotalKg: 18000,
			}},
		},
		{
			name: "every pair is checked",
			series: []engine.SensitivitySeries{
				line("x", 16500, 30), line("y", 18000, 0), line("z", 21000, 0),
			},
			maxKm: 300,
			want: []engine.Crossover{
				{AID: "x", ALabel: "x label", BID: "y", BLabel: "y label", DistanceKm: 50, TotalKg: 18000},
				{AID: "x", ALabel: "x label", BID: "z", BLabel: "z label", DistanceKm: 150, TotalKg: 21000},
			},
		},
		{
			name:   "single series",
			series: []engine.SensitivitySeries{line("a", 15000, 3)},
			maxKm:  300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Crossovers(tt.series, tt.maxKm)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.AID, got[i].AID)
				assert.Equal(t, want.ALabel, got[i].ALabel)
				assert.Equal(t, want.BID, got[i].BID)
				assert.Equal(t, want.BLabel, got[i].BLabel)
				assert.InDelta(t, want.DistanceKm, got[i].DistanceKm, 1e-9)
				assert.InDelta(t, want.TotalKg, got[i].TotalKg, 1e-6)
			}
		})
	}
}

func TestCrossovers_MatchSeriesTotals(t *testing.T) {
	rows := sampleRows(t)
	in := inputs(100, 0, true)

	series := engine.Sensitivity(rows, in, 5000, 0)
	byID := map[string]engine.SensitivitySeries{}
	for _, s := range series {
		byID[s.MaterialID] = s
	}
	for _, c := range engine.Crossovers(series, 5000) {
		a, b := byID[c.AID], byID[c.BID]
		assert.InDelta(t, a.Base+a.SlopeKgPerKm*c.DistanceKm, c.TotalKg, 1e-6)
		assert.InDelta(t, b.Base+b.SlopeKgPerKm*c.DistanceKm, c.TotalKg, 1e-6)
	}
}

func TestSensitivityRows(t *testing.T) {
	rows := sampleRows(t)

	chosen := engine.SensitivityRows(rows, []string{"lc3", "missing", "opc-a"})
	assert.Equal(t, []string{"lc3", "opc-a"}, ids(chosen))

	lowest := engine.SensitivityRows(rows, nil)
	require.Len(t, lowest, engine.DefaultSensitivityPlotted)
	for i := 1; i < len(lowest); i++ {
		assert.LessOrEqual(t, lowest[i-1].Total, lowest[i].Total)
	}
}
