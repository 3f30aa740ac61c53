package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
)

// SideBySideOutput is the JSON shape of `side-by-side --output json`.
type SideBySideOutput struct {
	IDs         []string            `json:"ids"`
	Baseline    *engine.Baseline    `json:"baseline,omitempty"`
	Comparisons []engine.Comparison `json:"comparisons"`
}

// NewSideBySideCmd creates the side-by-side command for up to three materials.
func NewSideBySideCmd() *cobra.Command {
	var (
		design designFlags
		output string
	)

	cmd := &cobra.Command{
		Use:     "side-by-side ID [ID [ID]]",
		Aliases: []string{"sbs"},
		Short:   "Compare up to three binders column by column",
		Example: `  binderlca side-by-side cem-i-42-5n cem-iii-a-42-5n lc3-50 --distance 80`,
		Args:    cobra.RangeArgs(1, engine.MaxCompare),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, output, config.FormatTable, config.FormatJSON)
			if err != nil {
				return err
			}
			in, err := design.inputs(cmd)
			if err != nil {
				return err
			}
			session, err := loadSession(cmd)
			if err != nil {
				return err
			}
			if err = checkIDs(session.Catalog(), args); err != nil {
				return err
			}

			set := engine.NewCompareSet(args...)
			baseline, hasBaseline := session.Baseline()
			comparisons := engine.SideBySide(session.Recompute(cmd.Context(), in), set, baseline)

			if format == config.FormatJSON {
				doc := SideBySideOutput{IDs: set.IDs(), Comparisons: comparisons}
				if hasBaseline {
					doc.Baseline = &baseline
				}
				return renderJSON(cmd.OutOrStdout(), doc)
			}
			renderSideBySide(cmd.OutOrStdout(), comparisons, in.VolumeM3, useColor(cmd))
			return nil
		},
	}

	addDesignFlags(cmd, &design)
	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)
	return cmd
}
