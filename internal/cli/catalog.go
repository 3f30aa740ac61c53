package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
)

// NewCatalogListCmd creates the catalog list command.
func NewCatalogListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the materials of the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd, output, config.FormatTable, config.FormatJSON)
			if err != nil {
				return err
			}
			cat, _, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			materials := cat.Materials()
			if format == config.FormatJSON {
				return renderJSON(cmd.OutOrStdout(), materials)
			}
			baseline, _ := engine.SelectBaseline(materials)
			renderMaterials(cmd.OutOrStdout(), materials, baseline.MaterialID)
			return nil
		},
	}

	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)
	return cmd
}

// NewCatalogValidateCmd creates the catalog validate command.
func NewCatalogValidateCmd() *cobra.Command {
	var (
		strict bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check catalog files and report dropped or adjusted records",
		Long: `Loads the active catalog and reports every record that was dropped (missing
id, name or emission factor, duplicate id) or adjusted (clamped fractions,
unknown SCM codes). With --strict any issue makes the command fail.`,
		Example: `  binderlca catalog validate --catalog cements.yaml --strict`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd, output, config.FormatTable, config.FormatJSON)
			if err != nil {
				return err
			}
			_, report, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			if format == config.FormatJSON {
				if err = renderJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				renderReport(cmd, report)
			}

			if strict && report.HasIssues() {
				return fmt.Errorf("%w: %d issue(s)", ErrCatalogIssues, len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any record was dropped or adjusted")
	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)
	return cmd
}

func renderReport(cmd *cobra.Command, report catalog.Report) {
	for _, src := range report.Sources {
		cmd.Printf("Source: %s\n", src)
	}
	cmd.Printf("Loaded %d materials, dropped %d\n", report.Loaded, report.Dropped)
	if !report.HasIssues() {
		cmd.Println("No issues found")
		return
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Source", "Record", "Field", "Severity", "Message"})
	for _, issue := range report.Issues {
		record := issue.ID
		if record == "" {
			record = fmt.Sprintf("#%d", issue.Index)
		}
		t.AppendRow(table.Row{issue.Source, record, issue.Field, string(issue.Severity), issue.Message})
	}
	t.Render()
}
