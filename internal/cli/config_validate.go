package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (global file, project overlay and
environment) for syntax and semantic correctness.

This includes:
- YAML syntax of the configuration files
- Output format, colour mode and page size
- Log level and format
- Design defaults (non-negative volume, distance and dosage, known dosage mode)
- Catalog paths (file exists, extension is .json, .yaml, .yml or .toml)
- Server address and shutdown timeout`,
		Example: `  # Validate current configuration
  binderlca config validate

  # Validate and show detailed information
  binderlca config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.NewWithProjectDir(cmd.Context(), config.GetResolvedProjectDir())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if dir := config.GetResolvedProjectDir(); dir != "" {
		overlay := filepath.Join(dir, configFileName)
		if _, err := os.Stat(overlay); err == nil {
			if err = config.ShallowMergeYAML(config.Defaults(), overlay); err != nil {
				return fmt.Errorf("project configuration is invalid: %w", err)
			}
		}
	}

	if err := validateCatalogPaths(cmd, cfg.Catalog.Paths); err != nil {
		return err
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// validateCatalogPaths checks that every configured catalog file exists and
// has a supported extension. Contents are checked by `catalog validate`.
func validateCatalogPaths(cmd *cobra.Command, paths []string) error {
	var failed int
	for _, p := range paths {
		if _, err := catalog.FormatFromPath(p); err != nil {
			cmd.PrintErrf("  - catalog %s: %v\n", p, err)
			failed++
			continue
		}
		if _, err := os.Stat(p); err != nil {
			cmd.PrintErrf("  - catalog %s: %v\n", p, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("catalog configuration has %d error(s)", failed)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Page size: %d\n", cfg.Output.PageSize)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log output: %s\n", cfg.Logging.Output())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}

	printDesignDetails(cmd, cfg.Design)
	printCatalogDetails(cmd, cfg.Catalog)
}

// printDesignDetails prints the default design inputs.
func printDesignDetails(cmd *cobra.Command, d config.DesignConfig) {
	cmd.Printf("  Design defaults: %s, %g m3, %g km, A4 %t, dosage %s (%g kg/m3), %s\n",
		d.ExposureClass, d.VolumeM3, d.DistanceKm, d.IncludeA4, d.DosageMode, d.GlobalDosage, d.ConcreteStrength)
}

// printCatalogDetails prints the configured catalog sources.
func printCatalogDetails(cmd *cobra.Command, c config.CatalogConfig) {
	if len(c.Paths) == 0 {
		cmd.Println("  Catalog: embedded default")
		return
	}
	cmd.Printf("  Catalog files: %d\n", len(c.Paths))
	for _, p := range c.Paths {
		cmd.Printf("    - %s\n", p)
	}
}
