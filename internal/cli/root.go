package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations; baseLogger is the
// same logger without the cli component, handed to long-running subsystems.
var (
	logger     zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration
	baseLogger zerolog.Logger //nolint:gochecknoglobals // Set with logger in setupLogging
)

// NewRootCmd creates the root Cobra command for the binderlca CLI.
// It resolves the project directory, loads configuration, wires up logging
// and tracing, and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "binderlca",
		Short: "Embodied carbon comparison for cement binders",
		Long: `binderlca compares the embodied carbon (A1-A3 and A4) of alternative cement
binders for one concrete element, ranked against the plain Portland cement
baseline of the catalog.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = ""
			}
			config.SetResolvedProjectDir(config.ResolveProjectDir(cmd.Context(), projectDir, cwd))
			config.InitGlobalConfig()

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringArray("catalog", nil,
		"catalog file (.json, .yaml, .toml); repeat to merge several, replaces the embedded catalog")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding .binderlca/config.yaml (default: search upwards from the working directory)")

	cmd.AddCommand(
		NewCompareCmd(), NewExportCmd(), NewBaselineCmd(), NewSensitivityCmd(),
		NewSideBySideCmd(), NewSavingsCmd(), NewServeCmd(), NewTUICmd(),
		newCatalogCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Rank every binder for 100 m3 of XC2 concrete hauled 50 km
  binderlca compare --distance 50

  # Only exposure-compatible blends, lowest total first
  binderlca compare --scope compatible --sort total

  # Per-cement dosage with one override, as JSON
  binderlca compare --dosage-mode perCement --override cem-iii-a-42-5n=340 --output json

  # Export the ranked rows
  binderlca export --file comparison.csv

  # Use a custom catalog and start the HTTP API with hot reload
  binderlca serve --catalog cements.yaml --watch

  # Interactive view
  binderlca tui`

// newCatalogCmd creates the catalog command group.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Catalog inspection commands"}
	cmd.AddCommand(NewCatalogListCmd(), NewCatalogValidateCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
