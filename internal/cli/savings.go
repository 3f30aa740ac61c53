package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/greenops"
)

// NewSavingsCmd creates the savings command, which states the element-level
// difference between one material and the baseline in everyday terms.
func NewSavingsCmd() *cobra.Command {
	var (
		design designFlags
		output string
	)

	cmd := &cobra.Command{
		Use:     "savings ID",
		Short:   "Show what choosing a binder saves against the baseline",
		Example: `  binderlca savings cem-iii-a-42-5n --volume 250`,
		Args:    cobra.ExactArgs(1),
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

			baseline, _ := session.Baseline()
			s, err := greenops.SavingsVsBaseline(session.Recompute(cmd.Context(), in), baseline, args[0])
			if errors.Is(err, greenops.ErrNoBaseline) {
				return fmt.Errorf("no savings without a baseline: %w", err)
			}
			if err != nil {
				return err
			}

			if format == config.FormatJSON {
				return renderJSON(cmd.OutOrStdout(), s)
			}
			renderSavings(cmd.OutOrStdout(), s)
			return nil
		},
	}

	addDesignFlags(cmd, &design)
	addOutputFlag(cmd, &output, config.FormatTable, config.FormatJSON)
	return cmd
}
