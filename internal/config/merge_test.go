package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	cfg := config.Defaults()
	cfg.Output.PageSize = 20
	cfg.Catalog.Paths = []string{"/srv/catalog/cements.json"}
	cfg.Server.Watch = true
	return cfg
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
  page_size: 5
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 5, target.Output.PageSize)
	assert.Empty(t, target.Output.Color, "section is replaced, not merged")

	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, []string{"/srv/catalog/cements.json"}, target.Catalog.Paths)
	assert.True(t, target.Server.Watch)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  level: debug
  format: json
catalog:
  paths:
    - ./site-cements.yaml
server:
  addr: ":9090"
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)
	assert.Equal(t, []string{"./site-cements.yaml"}, target.Catalog.Paths)
	assert.Equal(t, ":9090", target.Server.Addr)
	assert.False(t, target.Server.Watch)
	assert.Zero(t, target.Server.ShutdownTimeoutSeconds)

	assert.Equal(t, "table", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_DesignStartsFromDefaults(t *testing.T) {
	target := newDefaultTarget()
	target.Design.ExposureClass = "XS3"
	overlay := writeOverlay(t, `
design:
  volume_m3: 42
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.InDelta(t, 42.0, target.Design.VolumeM3, 1e-9)
	assert.True(t, target.Design.IncludeA4)
	assert.Equal(t, "XC2", target.Design.ExposureClass, "design section is replaced from defaults")
	assert.InDelta(t, 300.0, target.Design.GlobalDosage, 1e-9)
}

func TestShallowMergeYAML_EmptyOverlayFile(t *testing.T) {
	target := newDefaultTarget()
	before := *target

	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "")))
	assert.Equal(t, before.Output, target.Output)
	assert.Equal(t, before.Design, target.Design)
}

func TestShallowMergeYAML_CommentOnlyFile(t *testing.T) {
	target := newDefaultTarget()

	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# nothing here\n")))
	assert.Equal(t, 20, target.Output.PageSize)
}

func TestShallowMergeYAML_CorruptedYAMLReturnsError(t *testing.T) {
	target := newDefaultTarget()

	err := config.ShallowMergeYAML(target, writeOverlay(t, "output: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing overlay YAML")
}

func TestShallowMergeYAML_WrongSectionTypeReturnsError(t *testing.T) {
	target := newDefaultTarget()

	err := config.ShallowMergeYAML(target, writeOverlay(t, "design:\n  volume_m3: lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"design"`)
}

func TestShallowMergeYAML_MissingFileReturnsError(t *testing.T) {
	err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShallowMergeYAML_NilTarget(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "unused"))
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
output:
  default_format: csv
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "csv", target.Output.DefaultFormat)
}
