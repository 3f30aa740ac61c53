package cli_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestBaseline_Text(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "baseline")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Baseline: CEM I (52.5R)")
	assert.Contains(t, stdout, "ID:       opc")
	assert.Contains(t, stdout, "EF:       0.900 kgCO2e/kg binder")
}

func TestBaseline_JSON(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "baseline", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		HasBaseline bool `json:"has_baseline"`
		Baseline    struct {
			MaterialID string  `json:"material_id"`
			EF         float64 `json:"ef"`
		} `json:"baseline"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	assert.True(t, doc.HasBaseline)
	assert.Equal(t, "opc", doc.Baseline.MaterialID)
	assert.InDelta(t, 0.9, doc.Baseline.EF, 1e-9)
}

func TestSensitivity_JSON(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "sensitivity",
		"--ids", "opc,slag", "--max-km", "100", "--step-km", "50", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Distances []float64 `json:"distances_km"`
		Series    []struct {
			MaterialID string  `json:"material_id"`
			Base       float64 `json:"base_kg"`
			Slope      float64 `json:"slope_kg_per_km"`
			Points     []struct {
				DistanceKm float64 `json:"distance_km"`
				Total      float64 `json:"total_kg"`
			} `json:"points"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)

	assert.Equal(t, []float64{0, 50, 100}, doc.Distances)
	require.Len(t, doc.Series, 2)
	assert.Equal(t, "opc", doc.Series[0].MaterialID, "series follow the --ids order")
	assert.Equal(t, "slag", doc.Series[1].MaterialID)

	opc := doc.Series[0]
	assert.InDelta(t, 27000, opc.Base, 1e-6)
	// 0.0001 kg/kg/km * 300 kg/m3 * 100 m3
	assert.InDelta(t, 3, opc.Slope, 1e-9)
	require.Len(t, opc.Points, 3)
	assert.InDelta(t, 27300, opc.Points[2].Total, 1e-6)
}

func TestSensitivity_DefaultSelectionTable(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "sensitivity", "--max-km", "20", "--step-km", "10")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Slope kg/km")
	assert.Contains(t, stdout, "Distance km")
	assert.Contains(t, stdout, "lc3")
}

// crossingCatalog holds a short-haul binder with a steep transport factor and
// a heavier binder with none. At 100 m3 and 300 kg/m3 their totals meet at 50 km.
const crossingCatalog = `{
  "schema_version": "1.0.0",
  "materials": [
    {
      "id": "near",
      "name": "CEM III/B",
      "clinker_fraction": 0.3,
      "density_kg_m3": 2950,
      "default_dosage_kg_per_m3": 300,
      "co2e_per_kg_binder_A1A3": 0.55,
      "transport_ef_kg_per_kg_km": 0.001
    },
    {
      "id": "far",
      "name": "LC3-50",
      "clinker_fraction": 0.5,
      "density_kg_m3": 2900,
      "default_dosage_kg_per_m3": 300,
      "co2e_per_kg_binder_A1A3": 0.6
    }
  ]
}`

func TestSensitivity_Crossovers(t *testing.T) {
	setupCLITest(t)
	path := writeCatalog(t, "crossing.json", crossingCatalog)

	stdout, _, err := runCLI(t, "sensitivity", "--ids", "near,far", "--output", "json", "--catalog", path)
	require.NoError(t, err)

	var doc struct {
		Crossovers []struct {
			AID        string  `json:"a_id"`
			BID        string  `json:"b_id"`
			DistanceKm float64 `json:"distance_km"`
			TotalKg    float64 `json:"total_kg"`
		} `json:"crossovers"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	require.Len(t, doc.Crossovers, 1)
	assert.Equal(t, "near", doc.Crossovers[0].AID)
	assert.Equal(t, "far", doc.Crossovers[0].BID)
	assert.InDelta(t, 50, doc.Crossovers[0].DistanceKm, 1e-9)
	assert.InDelta(t, 18000, doc.Crossovers[0].TotalKg, 1e-6)

	stdout, _, err = runCLI(t, "sensitivity", "--ids", "near,far", "--max-km", "100", "--step-km", "25", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Break-even km")
	assert.Contains(t, stdout, "50.0")

	stdout, _, err = runCLI(t, "sensitivity", "--ids", "near,far", "--max-km", "40", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No break-even distances in range.")
}

func TestSensitivity_ParallelLinesHaveNoCrossovers(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "sensitivity", "--ids", "opc,slag", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Crossovers []json.RawMessage `json:"crossovers"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	assert.NotNil(t, doc.Crossovers, "crossovers is an empty list, not null")
	assert.Empty(t, doc.Crossovers)
}

func TestSensitivity_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown id", args: []string{"--ids", "opc,nope"}, wantErr: "unknown material: nope"},
		{name: "negative max", args: []string{"--max-km", "-1"}, wantErr: "--max-km"},
		{name: "negative step", args: []string{"--step-km", "-1"}, wantErr: "--step-km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, _, err := runWithCatalog(t, append([]string{"sensitivity"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSideBySide_Table(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "sbs", "opc", "slag", "lc3")
	require.NoError(t, err)

	assert.Contains(t, stdout, "CEM I (52.5R) [baseline]")
	assert.Contains(t, stdout, "CEM III/A (42.5N) [lowest]")
	assert.Contains(t, stdout, "vs lowest")
	assert.Contains(t, stdout, "27.0 t")
}

func TestSideBySide_JSON(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "side-by-side", "lc3", "opc", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		IDs         []string `json:"ids"`
		Comparisons []struct {
			IsBaseline    bool    `json:"is_baseline"`
			IsBest        bool    `json:"is_best"`
			DeltaVsBestKg float64 `json:"delta_vs_best_kg"`
		} `json:"comparisons"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)

	assert.Equal(t, []string{"lc3", "opc"}, doc.IDs)
	require.Len(t, doc.Comparisons, 2)
	assert.True(t, doc.Comparisons[0].IsBest)
	assert.InDelta(t, 0, doc.Comparisons[0].DeltaVsBestKg, 1e-9)
	assert.True(t, doc.Comparisons[1].IsBaseline)
	assert.InDelta(t, 9000, doc.Comparisons[1].DeltaVsBestKg, 1e-6)
}

func TestSideBySide_Errors(t *testing.T) {
	setupCLITest(t)

	_, _, err := runWithCatalog(t, "sbs", "opc", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown material: missing")

	_, _, err = runWithCatalog(t, "sbs", "opc", "slag", "lc3", "opc")
	require.Error(t, err, "at most three materials")

	_, _, err = runWithCatalog(t, "sbs")
	require.Error(t, err)
}

func TestSavings_Text(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "savings", "slag")
	require.NoError(t, err)

	assert.Contains(t, stdout, "CEM III/A (42.5N) saves 12.0 t (+44%) compared with opc")
	assert.Contains(t, stdout, "baseline 27.0 t, material 15.0 t")
}

func TestSavings_JSON(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "savings", "lc3", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		MaterialID string  `json:"material_id"`
		BaselineID string  `json:"baseline_id"`
		SavedKg    float64 `json:"saved_kg"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	assert.Equal(t, "lc3", doc.MaterialID)
	assert.Equal(t, "opc", doc.BaselineID)
	assert.InDelta(t, 9000, doc.SavedKg, 1e-6)
}

func TestSavings_UnknownMaterial(t *testing.T) {
	setupCLITest(t)

	_, _, err := runWithCatalog(t, "savings", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown material: nope")
}

func TestCatalogList(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(baseline)")
	assert.Contains(t, stdout, "(3 materials)")

	stdout, _, err = runWithCatalog(t, "catalog", "list", "--output", "json")
	require.NoError(t, err)
	var materials []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &materials), stdout)
	assert.Len(t, materials, 3)
}

func TestCatalogValidate_Clean(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runWithCatalog(t, "catalog", "validate", "--strict")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Loaded 3 materials, dropped 0")
	assert.Contains(t, stdout, "No issues found")
}

func TestCatalogValidate_Issues(t *testing.T) {
	setupCLITest(t)

	path := writeCatalog(t, "broken.yaml", `
- id: good
  name: CEM I
  clinker_fraction: 0.95
  density_kg_m3: 3150
  default_dosage_kg_per_m3: 320
  co2e_per_kg_binder_A1A3: 0.85
- id: no-ef
  name: Mystery blend
`)

	stdout, _, err := runCLI(t, "catalog", "validate", "--catalog", path)
	require.NoError(t, err, "issues only fail with --strict")
	assert.Contains(t, stdout, "Loaded 1 materials, dropped 1")
	assert.Contains(t, stdout, "no-ef")

	_, _, err = runCLI(t, "catalog", "validate", "--strict", "--catalog", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog has issues")
}

func TestTUI_RequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("running attached to a terminal")
	}
	setupCLITest(t)

	_, _, err := runWithCatalog(t, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestRoot_Help(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := runCLI(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"compare", "export", "baseline", "sensitivity", "side-by-side", "savings", "serve", "tui", "catalog", "config"} {
		assert.Contains(t, stdout, sub)
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	setupCLITest(t)

	_, _, err := runCLI(t, "frobnicate")
	require.Error(t, err)
}
