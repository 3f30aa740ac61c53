package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/cli/pagination"
	"github.com/rshade/binderlca/internal/tui"
)

// NewTUICmd creates the tui command, the interactive comparison view.
func NewTUICmd() *cobra.Command {
	var (
		design    designFlags
		query     queryFlags
		sort      string
		exportDir string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore the comparison interactively",
		Long: `Opens a full-screen view of the ranked binders. Design inputs can be changed
with single keys and every change recomputes all rows. Press enter for the
detail and distance sensitivity of a row, c to add it to the side-by-side set,
e to export and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return ErrNotTerminal
			}
			in, err := design.inputs(cmd)
			if err != nil {
				return err
			}
			q, err := query.query()
			if err != nil {
				return err
			}
			if q, err = pagination.NewRowSorter().Query(pagination.PaginationParams{Sort: sort}, q); err != nil {
				return err
			}
			session, err := loadSession(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), session, tui.Options{Inputs: in, Query: q, ExportDir: exportDir})
		},
	}

	addDesignFlags(cmd, &design)
	addQueryFlags(cmd, &query)
	cmd.Flags().StringVar(&sort, "sort", "", "initial sort 'field[:asc|desc]' (default reduction:desc)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "directory the e key exports to (default: working directory)")

	return cmd
}
