package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
)

// SensitivityOutput is the JSON shape of `sensitivity --output json`.
type SensitivityOutput struct {
	Inputs     engine.DesignInputs        `json:"inputs"`
	Distances  []float64                  `json:"distances_km"`
	Series     []engine.SensitivitySeries `json:"series"`
	Crossovers []engine.Crossover         `json:"crossovers"`
}

// NewSensitivityCmd creates the sensitivity command, which tabulates element
// totals over haul distance.
func NewSensitivityCmd() *cobra.Command {
	var (
		design designFlags
		ids    []string
		maxKm  float64
		stepKm float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Show how element totals change with haul distance",
		Long: `Tabulates the element total of each chosen binder from 0 km to --max-km.
Without --ids the five binders with the lowest total at the current distance
are shown. A --step-km of 0 picks 5 km steps up to 200 km and 10 km beyond.
Break-even distances where two binders swap places are listed after the table.`,
		Example: `  binderlca sensitivity
  binderlca sensitivity --ids cem-i-42-5n,cem-iii-a-42-5n --max-km 500 --step-km 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd, output, config.FormatTable, config.FormatJSON)
			if err != nil {
				return err
			}
			if maxKm < 0 {
				return fmt.Errorf("--max-km must be >= 0, got %g", maxKm)
			}
			if stepKm < 0 {
				return fmt.Errorf("--step-km must be >= 0, got %g", stepKm)
			}
			in, err := design.inputs(cmd)
			if err != nil {
				return err
			}

			session, err := loadSession(cmd)
			if err != nil {
				return err
			}
			if err = checkIDs(session.Catalog(), ids); err != nil {
				return err
			}

			rows := engine.SensitivityRows(session.Recompute(cmd.Context(), in), ids)
			series := engine.Sensitivity(rows, in, maxKm, stepKm)
			crossovers := engine.Crossovers(series, maxKm)
			if crossovers == nil {
				crossovers = []engine.Crossover{}
			}

			if format == config.FormatJSON {
				return renderJSON(cmd.OutOrStdout(), SensitivityOutput{
					Inputs:     in,
					Distances:  engine.SensitivityDistances(maxKm, stepKm),
					Series:     series,
					Crossovers: crossovers,
				})
			}
			renderSensitivity(cmd.OutOrStdout(), series, crossovers)
			return nil
		},
	}

	addDesignFlags(cmd, &design)
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "material IDs to show, comma-separated (default: five lowest totals)")
	cmd.Flags().Float64Var(&maxKm, "max-km", engine.DefaultSensitivityMaxKm, "largest haul distance in km")
	cmd.Flags().Float64Var(&stepKm, "step-km", 0, "distance step in km (0 = automatic)")
	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)

	return cmd
}
