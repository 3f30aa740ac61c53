// Package config loads binderlca settings from ~/.binderlca/config.yaml, an
// optional project-local .binderlca/config.yaml overlay and BINDERLCA_*
// environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/binderlca/internal/engine"
)

// Environment variables read by the configuration layer.
const (
	EnvHome       = "BINDERLCA_HOME"
	EnvProjectDir = "BINDERLCA_PROJECT_DIR"
	EnvLogLevel   = "BINDERLCA_LOG_LEVEL"
	EnvLogFormat  = "BINDERLCA_LOG_FORMAT"
	EnvCatalog    = "BINDERLCA_CATALOG"
	EnvOutput     = "BINDERLCA_OUTPUT"
)

// Output formats accepted by output.default_format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Colour modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	configFileName   = "config.yaml"
	configDirName    = ".binderlca"
	outputTypeFile   = "file"
	defaultPageSize  = 0
	defaultAddr      = "127.0.0.1:8080"
	defaultShutdownS = 10
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors; compare with errors.Is.
var (
	// ErrUnknownKey is returned by Get and Set for keys outside Keys().
	ErrUnknownKey = constError("unknown configuration key")

	// ErrInvalidValue is returned when a value cannot be parsed or fails validation.
	ErrInvalidValue = constError("invalid configuration value")
)

// Config is the full binderlca configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Design  DesignConfig  `yaml:"design"  json:"design"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Server  ServerConfig  `yaml:"server"  json:"server"`

	configPath string
	loadErr    error
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	// PageSize limits table rows; 0 shows everything.
	PageSize int    `yaml:"page_size" json:"page_size"`
	Color    string `yaml:"color"     json:"color"`
}

// LoggingConfig controls the zerolog logger built for every command.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DesignConfig holds the default design inputs used when a command does not
// override them with flags or query parameters.
type DesignConfig struct {
	ExposureClass    string  `yaml:"exposure_class"    json:"exposure_class"`
	VolumeM3         float64 `yaml:"volume_m3"         json:"volume_m3"`
	DistanceKm       float64 `yaml:"distance_km"       json:"distance_km"`
	IncludeA4        bool    `yaml:"include_a4"        json:"include_a4"`
	DosageMode       string  `yaml:"dosage_mode"       json:"dosage_mode"`
	GlobalDosage     float64 `yaml:"global_dosage"     json:"global_dosage"`
	ConcreteStrength string  `yaml:"concrete_strength" json:"concrete_strength"`
}

// CatalogConfig lists catalog documents loaded instead of the embedded one.
type CatalogConfig struct {
	Paths []string `yaml:"paths,omitempty" json:"paths,omitempty"`
}

// ServerConfig controls `binderlca serve`.
type ServerConfig struct {
	Addr                   string `yaml:"addr"                     json:"addr"`
	Watch                  bool   `yaml:"watch"                    json:"watch"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

// Defaults returns the built-in configuration without reading any file.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			PageSize:      defaultPageSize,
			Color:         ColorAuto,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Design:  DefaultDesign(),
		Catalog: CatalogConfig{},
		Server: ServerConfig{
			Addr:                   defaultAddr,
			ShutdownTimeoutSeconds: defaultShutdownS,
		},
	}
}

// DefaultDesign mirrors engine.DefaultInputs.
func DefaultDesign() DesignConfig {
	in := engine.DefaultInputs()
	return DesignConfig{
		ExposureClass:    in.ExposureClass,
		VolumeM3:         in.VolumeM3,
		DistanceKm:       in.DistanceKm,
		IncludeA4:        in.IncludeA4,
		DosageMode:       string(in.Policy),
		GlobalDosage:     in.GlobalDosage,
		ConcreteStrength: in.ConcreteStrength,
	}
}

// Inputs converts the design defaults into engine inputs.
func (d DesignConfig) Inputs() engine.DesignInputs {
	policy, err := engine.ParsePolicy(d.DosageMode)
	if err != nil {
		policy = engine.PolicyGlobal
	}
	return engine.DesignInputs{
		ExposureClass:    d.ExposureClass,
		VolumeM3:         d.VolumeM3,
		DistanceKm:       d.DistanceKm,
		IncludeA4:        d.IncludeA4,
		Policy:           policy,
		GlobalDosage:     d.GlobalDosage,
		ConcreteStrength: d.ConcreteStrength,
	}.Normalized()
}

// New returns the global configuration file layered over the defaults, with
// environment overrides applied. A missing file is not an error; a broken
// one is remembered and reported by Validate.
func New() *Config {
	cfg := newFromFile()
	cfg.applyEnv()
	return cfg
}

func newFromFile() *Config {
	cfg := Defaults()
	dir, err := GetConfigDir()
	if err != nil {
		cfg.loadErr = err
		return cfg
	}
	cfg.configPath = filepath.Join(dir, configFileName)
	cfg.loadErr = cfg.Load()
	return cfg
}

// ConfigPath is where Save writes.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath redirects Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the file at ConfigPath over the current values. A missing file
// leaves c unchanged.
func (c *Config) Load() error {
	if c.configPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the configuration as YAML to ConfigPath, creating its directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no config path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// applyEnv layers BINDERLCA_* overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		c.Catalog.Paths = splitList(v, string(os.PathListSeparator))
	}
}

// Validate reports the first problem found, including a failed file load.
func (c *Config) Validate() error {
	if c.loadErr != nil {
		return c.loadErr
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("%w: output.default_format %q (want table, json or csv)",
			ErrInvalidValue, c.Output.DefaultFormat)
	}
	if c.Output.PageSize < 0 {
		return fmt.Errorf("%w: output.page_size must be >= 0, got %d", ErrInvalidValue, c.Output.PageSize)
	}
	switch c.Output.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: output.color %q", ErrInvalidValue, c.Output.Color)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidValue, c.Logging.Format)
	}

	if c.Design.VolumeM3 < 0 {
		return fmt.Errorf("%w: design.volume_m3 must be >= 0", ErrInvalidValue)
	}
	if c.Design.DistanceKm < 0 {
		return fmt.Errorf("%w: design.distance_km must be >= 0", ErrInvalidValue)
	}
	if c.Design.GlobalDosage < 0 {
		return fmt.Errorf("%w: design.global_dosage must be >= 0", ErrInvalidValue)
	}
	if _, err := engine.ParsePolicy(c.Design.DosageMode); err != nil {
		return fmt.Errorf("%w: design.dosage_mode: %w", ErrInvalidValue, err)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidValue)
	}
	if c.Server.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("%w: server.shutdown_timeout_seconds must be >= 0", ErrInvalidValue)
	}
	return nil
}

// field binds a dotted key to accessors on Config.
type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

//nolint:gochecknoglobals // Fixed key table.
var fields = map[string]field{
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"output.page_size": {
		get: func(c *Config) string { return strconv.Itoa(c.Output.PageSize) },
		set: func(c *Config, v string) error { return setInt(&c.Output.PageSize, v) },
	},
	"output.color": {
		get: func(c *Config) string { return c.Output.Color },
		set: func(c *Config, v string) error { c.Output.Color = v; return nil },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
	"design.exposure_class": {
		get: func(c *Config) string { return c.Design.ExposureClass },
		set: func(c *Config, v string) error { c.Design.ExposureClass = v; return nil },
	},
	"design.volume_m3": {
		get: func(c *Config) string { return formatFloat(c.Design.VolumeM3) },
		set: func(c *Config, v string) error { return setFloat(&c.Design.VolumeM3, v) },
	},
	"design.distance_km": {
		get: func(c *Config) string { return formatFloat(c.Design.DistanceKm) },
		set: func(c *Config, v string) error { return setFloat(&c.Design.DistanceKm, v) },
	},
	"design.include_a4": {
		get: func(c *Config) string { return strconv.FormatBool(c.Design.IncludeA4) },
		set: func(c *Config, v string) error { return setBool(&c.Design.IncludeA4, v) },
	},
	"design.dosage_mode": {
		get: func(c *Config) string { return c.Design.DosageMode },
		set: func(c *Config, v string) error { c.Design.DosageMode = v; return nil },
	},
	"design.global_dosage": {
		get: func(c *Config) string { return formatFloat(c.Design.GlobalDosage) },
		set: func(c *Config, v string) error { return setFloat(&c.Design.GlobalDosage, v) },
	},
	"design.concrete_strength": {
		get: func(c *Config) string { return c.Design.ConcreteStrength },
		set: func(c *Config, v string) error { c.Design.ConcreteStrength = v; return nil },
	},
	"catalog.paths": {
		get: func(c *Config) string { return strings.Join(c.Catalog.Paths, ",") },
		set: func(c *Config, v string) error { c.Catalog.Paths = splitList(v, ","); return nil },
	},
	"server.addr": {
		get: func(c *Config) string { return c.Server.Addr },
		set: func(c *Config, v string) error { c.Server.Addr = v; return nil },
	},
	"server.watch": {
		get: func(c *Config) string { return strconv.FormatBool(c.Server.Watch) },
		set: func(c *Config, v string) error { return setBool(&c.Server.Watch, v) },
	},
	"server.shutdown_timeout_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.Server.ShutdownTimeoutSeconds) },
		set: func(c *Config, v string) error { return setInt(&c.Server.ShutdownTimeoutSeconds, v) },
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value of a dotted key such as "design.volume_m3".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the field named by key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.set(c, strings.TrimSpace(value))
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
	}
	*dst = b
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func splitList(v, sep string) []string {
	var out []string
	for _, p := range strings.Split(v, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
