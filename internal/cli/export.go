package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/cli/pagination"
	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/export"
)

// NewExportCmd creates the export command. Exports always hold the full
// filtered and sorted row set; paging flags do not apply.
func NewExportCmd() *cobra.Command {
	var (
		design designFlags
		query  queryFlags
		sort   string
		format string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ranked rows as delimited text or JSON",
		Example: `  # Delimited export to stdout
  binderlca export

  # Write the JSON document for the compatible rows
  binderlca export --scope compatible --format json --file comparison.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			format = strings.ToLower(strings.TrimSpace(format))
			if format != config.FormatCSV && format != config.FormatJSON {
				return fmt.Errorf("unsupported export format %q (want csv or json)", format)
			}

			session, err := loadSession(cmd)
			if err != nil {
				return err
			}
			res := session.Evaluate(cmd.Context(), in, q)

			if file == "" || file == "-" {
				return writeExport(cmd.OutOrStdout(), format, res)
			}
			if err = writeExportFile(file, format, res); err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).
				Str("operation", "export").
				Str("file", file).
				Str("format", format).
				Int("rows", len(res.View.All)).
				Msg("export written")
			cmd.PrintErrf("Exported %d rows to %s\n", len(res.View.All), file)
			return nil
		},
	}

	addDesignFlags(cmd, &design)
	addQueryFlags(cmd, &query)
	cmd.Flags().StringVar(&sort, "sort", "", "sort expression 'field[:asc|desc]' (default reduction:desc)")
	cmd.Flags().StringVar(&format, "format", config.FormatCSV, "export format: csv or json")
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file (default stdout)")

	return cmd
}

func writeExport(w io.Writer, format string, res engine.Result) error {
	if format == config.FormatJSON {
		return export.WriteJSON(w, res)
	}
	return export.Write(w, res.View.All, res.Inputs)
}

func writeExportFile(path, format string, res engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err = writeExport(f, format, res); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}
