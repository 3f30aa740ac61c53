package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/cli/pagination"
	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/export"
)

// compareParams holds the flags of the compare command.
type compareParams struct {
	design designFlags
	query  queryFlags
	page   *pagination.PaginationParams
	output string
}

// CompareOutput is the JSON shape of `compare --output json`.
type CompareOutput struct {
	Inputs     engine.DesignInputs        `json:"inputs"`
	Baseline   *engine.Baseline           `json:"baseline,omitempty"`
	Total      int                        `json:"total"`
	BestID     string                     `json:"best_id,omitempty"`
	Rows       []engine.Row               `json:"rows"`
	Pagination *pagination.PaginationMeta `json:"pagination,omitempty"`
}

// NewCompareCmd creates the compare command, which ranks every catalog
// material for one set of design inputs.
func NewCompareCmd() *cobra.Command {
	params := compareParams{page: pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank binders by embodied carbon for a concrete element",
		Long: `Computes the A1-A3 and A4 emissions of every catalog binder for one concrete
element and ranks them. Reductions are measured against the catalog baseline,
the common plain Portland cement with the highest emission factor.`,
		Example: `  # Default design inputs from config
  binderlca compare

  # 40 m3 of C30/37 hauled 120 km, only exposure-compatible binders
  binderlca compare --volume 40 --strength C30/37 --distance 120 --scope compatible

  # Second page of ten, lowest total first
  binderlca compare --sort total:asc --page 2 --page-size 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, &params)
		},
	}

	addDesignFlags(cmd, &params.design)
	addQueryFlags(cmd, &params.query)
	pagination.AddFlags(cmd, params.page)
	addOutputFlag(cmd, &params.output, config.FormatTable, config.FormatJSON, config.FormatCSV)

	return cmd
}

func runCompare(cmd *cobra.Command, params *compareParams) error {
	format, err := outputFormat(cmd, params.output, config.FormatTable, config.FormatJSON, config.FormatCSV)
	if err != nil {
		return err
	}
	in, err := params.design.inputs(cmd)
	if err != nil {
		return err
	}
	q, err := params.query.query()
	if err != nil {
		return err
	}
	page := *params.page
	if !cmd.Flags().Changed("limit") && !page.IsPageBased() && page.Limit == 0 {
		page.Limit = config.GetPageSize()
	}
	if q, err = pagination.NewRowSorter().Query(page, q); err != nil {
		return err
	}

	session, err := loadSession(cmd)
	if err != nil {
		return err
	}
	res := session.Evaluate(cmd.Context(), in, q)
	rows := pagination.Apply(page, res.View.All)
	if rows == nil {
		rows = []engine.Row{}
	}

	logger.Debug().Ctx(cmd.Context()).
		Str("operation", "compare").
		Str("scope", string(q.Scope)).
		Str("sort", string(q.Sort)+":"+string(q.Dir)).
		Int("total", res.View.Total).
		Int("shown", len(rows)).
		Msg("comparison computed")

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		doc := CompareOutput{
			Inputs: res.Inputs,
			Total:  res.View.Total,
			BestID: res.View.BestID,
			Rows:   rows,
		}
		if res.HasBaseline {
			b := res.Baseline
			doc.Baseline = &b
		}
		if page.IsEnabled() {
			meta := pagination.NewPaginationMeta(page, res.View.Total)
			doc.Pagination = &meta
		}
		return renderJSON(out, doc)
	case config.FormatCSV:
		return export.Write(out, res.View.All, res.Inputs)
	default:
		renderRows(out, res, rows, useColor(cmd))
		return nil
	}
}
