package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()

	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "XC2", cfg.Design.ExposureClass)
	assert.InDelta(t, 100.0, cfg.Design.VolumeM3, 1e-9)
	assert.Zero(t, cfg.Design.DistanceKm)
	assert.True(t, cfg.Design.IncludeA4)
	assert.Equal(t, "global", cfg.Design.DosageMode)
	assert.InDelta(t, 300.0, cfg.Design.GlobalDosage, 1e-9)
	assert.Equal(t, "C25/30", cfg.Design.ConcreteStrength)
	require.NoError(t, cfg.Validate())
}

func TestDesignConfig_Inputs(t *testing.T) {
	assert.Equal(t, engine.DefaultInputs(), config.DefaultDesign().Inputs())

	d := config.DefaultDesign()
	d.DosageMode = "per-cement"
	d.VolumeM3 = -5
	in := d.Inputs()
	assert.Equal(t, engine.PolicyPerCement, in.Policy)
	assert.Zero(t, in.VolumeM3, "inputs are normalized")

	d.DosageMode = "bogus"
	assert.Equal(t, engine.PolicyGlobal, d.Inputs().Policy)
}

func TestNew_ReadsFileAndEnv(t *testing.T) {
	home := isolateHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`output:
  default_format: json
design:
  volume_m3: 12.5
  include_a4: false
`), 0o600))
	t.Setenv("BINDERLCA_CATALOG", "a.json"+string(os.PathListSeparator)+" b.yaml ")

	cfg := config.New()

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.InDelta(t, 12.5, cfg.Design.VolumeM3, 1e-9)
	assert.False(t, cfg.Design.IncludeA4)
	assert.Equal(t, "XC2", cfg.Design.ExposureClass, "fields absent from the file keep defaults")
	assert.Equal(t, []string{"a.json", "b.yaml"}, cfg.Catalog.Paths)
	require.NoError(t, cfg.Validate())
}

func TestNew_BrokenFileReportedByValidate(t *testing.T) {
	home := isolateHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("output: [\n"), 0o600))

	cfg := config.New()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestSaveAndLoad(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Defaults()
	cfg.SetConfigPath(path)
	require.NoError(t, cfg.Set("design.distance_km", "75"))
	require.NoError(t, cfg.Set("catalog.paths", "one.json, two.toml"))
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded := config.Defaults()
	loaded.SetConfigPath(path)
	require.NoError(t, loaded.Load())
	assert.InDelta(t, 75.0, loaded.Design.DistanceKm, 1e-9)
	assert.Equal(t, []string{"one.json", "two.toml"}, loaded.Catalog.Paths)
}

func TestSave_WithoutPath(t *testing.T) {
	require.Error(t, config.Defaults().Save())
}

func TestLoad_MissingFileKeepsValues(t *testing.T) {
	cfg := config.Defaults()
	cfg.SetConfigPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, cfg.Load())
	assert.Equal(t, config.DefaultDesign(), cfg.Design)
}

func TestGetSet(t *testing.T) {
	cfg := config.Defaults()

	for _, key := range config.Keys() {
		_, err := cfg.Get(key)
		require.NoError(t, err, key)
	}

	tests := []struct {
		key, value, want string
	}{
		{key: "output.page_size", value: "25", want: "25"},
		{key: "design.volume_m3", value: " 12.5 ", want: "12.5"},
		{key: "design.include_a4", value: "false", want: "false"},
		{key: "design.dosage_mode", value: "perCement", want: "perCement"},
		{key: "server.watch", value: "true", want: "true"},
		{key: "logging.level", value: "debug", want: "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetSet_Errors(t *testing.T) {
	cfg := config.Defaults()

	_, err := cfg.Get("plugins.aws")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope", "1"), config.ErrUnknownKey)

	require.ErrorIs(t, cfg.Set("output.page_size", "ten"), config.ErrInvalidValue)
	require.ErrorIs(t, cfg.Set("design.volume_m3", "big"), config.ErrInvalidValue)
	require.ErrorIs(t, cfg.Set("design.include_a4", "maybe"), config.ErrInvalidValue)
	assert.InDelta(t, 100.0, cfg.Design.VolumeM3, 1e-9, "failed set leaves value unchanged")
}

func TestKeys_Sorted(t *testing.T) {
	keys := config.Keys()
	require.NotEmpty(t, keys)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "design.global_dosage")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "csv output", mutate: func(c *config.Config) { c.Output.DefaultFormat = "csv" }},
		{name: "bad format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: "output.default_format"},
		{name: "negative page size", mutate: func(c *config.Config) { c.Output.PageSize = -1 }, wantErr: "page_size"},
		{name: "bad color", mutate: func(c *config.Config) { c.Output.Color = "rainbow" }, wantErr: "output.color"},
		{name: "bad level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "negative volume", mutate: func(c *config.Config) { c.Design.VolumeM3 = -1 }, wantErr: "volume_m3"},
		{name: "negative distance", mutate: func(c *config.Config) { c.Design.DistanceKm = -1 }, wantErr: "distance_km"},
		{name: "negative dosage", mutate: func(c *config.Config) { c.Design.GlobalDosage = -1 }, wantErr: "global_dosage"},
		{name: "bad dosage mode", mutate: func(c *config.Config) { c.Design.DosageMode = "mix" }, wantErr: "dosage_mode"},
		{name: "empty addr", mutate: func(c *config.Config) { c.Server.Addr = "" }, wantErr: "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrInvalidValue)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "warn", Format: "text"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "warn", got.Level)
	assert.Equal(t, "console", got.Format)
	assert.Equal(t, "stderr", lc.Output())

	lc.File = "/var/log/binderlca.log"
	assert.Equal(t, "/var/log/binderlca.log", lc.ToLoggingConfig().File)
	assert.Equal(t, "file", lc.Output())
}
