package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/cli"
	"github.com/rshade/binderlca/internal/config"
)

// testCatalog has one plain Portland cement (the baseline), one slag blend and
// one limestone calcined clay blend. At the default inputs (100 m3, 300 kg/m3,
// 0 km) the element totals are 27000, 15000 and 18000 kg.
const testCatalog = `{
  "schema_version": "1.0.0",
  "materials": [
    {
      "id": "opc",
      "name": "CEM I",
      "strength_class": "52.5R",
      "clinker_fraction": 0.95,
      "density_kg_m3": 3150,
      "default_dosage_kg_per_m3": 320,
      "co2e_per_kg_binder_A1A3": 0.9,
      "transport_ef_kg_per_kg_km": 0.0001,
      "compatible_exposure_classes": ["XC1", "XC2"],
      "is_common": true
    },
    {
      "id": "slag",
      "name": "CEM III/A",
      "strength_class": "42.5N",
      "clinker_fraction": 0.5,
      "scms": [{"type": "S", "fraction": 0.45}],
      "density_kg_m3": 3000,
      "default_dosage_kg_per_m3": 340,
      "co2e_per_kg_binder_A1A3": 0.5,
      "transport_ef_kg_per_kg_km": 0.0001,
      "compatible_exposure_classes": ["XC2", "XS1"],
      "notes": "Low heat",
      "common": true
    },
    {
      "id": "lc3",
      "name": "LC3-50",
      "strength_class": "42.5N",
      "clinker_fraction": 0.5,
      "scms": [{"type": "CC", "fraction": 0.3}, {"type": "LL", "fraction": 0.15}],
      "density_kg_m3": 2900,
      "default_dosage_kg_per_m3": 300,
      "co2e_per_kg_binder_A1A3": 0.6,
      "transport_ef_kg_per_kg_km": 0.0001,
      "compatible_exposure_classes": ["XC1"]
    }
  ]
}`

// setupCLITest isolates the global and project configuration directories and
// registers cleanup for global state.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Setenv(config.EnvCatalog, "")
	t.Setenv(config.EnvOutput, "")
	t.Setenv("NO_COLOR", "1")
	config.ResetGlobalConfigForTest()
	config.SetResolvedProjectDir("")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
}

// writeCatalog writes content to a file named name in a temp directory.
func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the root command and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// runWithCatalog runs a command against the test catalog.
func runWithCatalog(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	path := writeCatalog(t, "cements.json", testCatalog)
	return runCLI(t, append(args, "--catalog", path)...)
}
