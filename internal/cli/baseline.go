package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/greenops"
)

// BaselineOutput is the JSON shape of `baseline --output json`.
type BaselineOutput struct {
	Baseline    *engine.Baseline `json:"baseline,omitempty"`
	HasBaseline bool             `json:"has_baseline"`
	Sources     []string         `json:"sources"`
}

// NewBaselineCmd creates the baseline command.
func NewBaselineCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Show the reference cement reductions are measured against",
		Long: `Shows the catalog baseline: among the common plain Portland cements (CEM I or
OPC without supplementary materials), the one with the highest emission factor.
Without one, every reduction is reported as 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd, output, config.FormatTable, config.FormatJSON)
			if err != nil {
				return err
			}
			session, err := loadSession(cmd)
			if err != nil {
				return err
			}
			b, ok := session.Baseline()

			if format == config.FormatJSON {
				doc := BaselineOutput{HasBaseline: ok, Sources: session.Catalog().Sources()}
				if ok {
					doc.Baseline = &b
				}
				return renderJSON(cmd.OutOrStdout(), doc)
			}

			if !ok {
				cmd.Println("No baseline: the catalog has no common plain Portland cement. Reductions are reported as 0.")
				return nil
			}
			cmd.Printf("Baseline: %s\n", b.Label)
			cmd.Printf("ID:       %s\n", b.MaterialID)
			cmd.Printf("EF:       %s kgCO2e/kg binder\n", greenops.FormatFloat(b.EF, 3))
			return nil
		},
	}

	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)
	return cmd
}
