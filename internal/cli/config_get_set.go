package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the effective value of a configuration key",
		Long: `Prints the value of a dotted key after the global file, the project overlay
and BINDERLCA_* environment variables have been applied.

Keys: ` + strings.Join(config.Keys(), ", "),
		Example: `  binderlca config get design.volume_m3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. Values are written to the
// global file unless --project is given.
func NewConfigSetCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Sets a dotted key and saves the configuration file. Environment variables are
not written back.

Keys: ` + strings.Join(config.Keys(), ", "),
		Example: `  binderlca config set output.default_format json
  binderlca config set design.distance_km 120 --project`,
		Args: cobra.ExactArgs(2), //nolint:mnd // KEY and VALUE.
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFileFor(project)
			if err != nil {
				return err
			}

			cfg := config.Defaults()
			cfg.SetConfigPath(path)
			if err = cfg.Load(); err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			// Later reads in this process see the new value.
			config.ResetGlobalConfigForTest()

			logger.Info().Ctx(cmd.Context()).
				Str("operation", "config_set").
				Str("key", args[0]).
				Str("file", path).
				Msg("configuration updated")
			cmd.Printf("Set %s = %s in %s\n", args[0], args[1], path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "write to the project-local .binderlca/config.yaml")
	return cmd
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd, output, config.FormatTable, config.FormatJSON)
			if err != nil {
				return err
			}
			cfg := config.GetGlobalConfig()
			if format == config.FormatJSON {
				return renderJSON(cmd.OutOrStdout(), cfg)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Key", "Value"})
			for _, key := range config.Keys() {
				v, _ := cfg.Get(key)
				t.AppendRow(table.Row{key, v})
			}
			t.Render()
			if dir := config.GetResolvedProjectDir(); dir != "" {
				cmd.Printf("Project overlay: %s\n", filepath.Join(dir, configFileName))
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)
	return cmd
}

// configFileFor returns the project overlay path or the global file path.
func configFileFor(project bool) (string, error) {
	if !project {
		return globalConfigPath()
	}
	dir := config.GetResolvedProjectDir()
	if dir == "" {
		return "", errors.New("no project found; run 'binderlca config init --project-dir DIR' first")
	}
	return filepath.Join(dir, configFileName), nil
}
