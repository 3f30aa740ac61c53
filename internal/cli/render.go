package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/export"
	"github.com/rshade/binderlca/internal/greenops"
)

// bandColors maps reduction bands to terminal colours.
//
//nolint:gochecknoglobals // Fixed lookup table.
var bandColors = map[engine.Band]text.Colors{
	engine.BandGreat:    {text.FgHiGreen, text.Bold},
	engine.BandGood:     {text.FgGreen},
	engine.BandMarginal: {text.FgYellow},
	engine.BandWorse:    {text.FgRed},
}

// newTable returns a table writer mirroring to w in the CLI's house style.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func colorBand(b engine.Band, s string, color bool) string {
	if !color {
		return s
	}
	return bandColors[b].Sprint(s)
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// renderRows writes the ranked rows as a table followed by a one-line summary.
func renderRows(w io.Writer, res engine.Result, rows []engine.Row, color bool) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{
		"#", "ID", "Cement", "Strength", "Clinker %", "SCMs", "EF",
		"Dosage", "A1-A3 kg/m3", "A4 kg", "Total kg", "Delta %", "Band", "Tags",
	})
	for i, r := range rows {
		mark := ""
		if r.ID() == res.View.BestID {
			mark = "*"
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%d%s", i+1, mark),
			r.ID(),
			r.Material.Name,
			r.Material.StrengthClass,
			greenops.FormatFloat(r.Material.ClinkerFraction*100, 0),
			scmSummary(r.Material.SCMs),
			greenops.FormatFloat(r.Material.EF, 3),
			greenops.FormatFloat(r.Dosage, 0),
			greenops.FormatFloat(r.PerM3, 1),
			greenops.FormatFloat(r.A4, 0),
			greenops.FormatFloat(r.Total, 0),
			colorBand(r.Band, export.SignedPercent(r.Reduction), color),
			colorBand(r.Band, string(r.Band), color),
			strings.Join(r.Tags, " "),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Clinker %", Align: text.AlignRight},
		{Name: "EF", Align: text.AlignRight},
		{Name: "Dosage", Align: text.AlignRight},
		{Name: "A1-A3 kg/m3", Align: text.AlignRight},
		{Name: "A4 kg", Align: text.AlignRight},
		{Name: "Total kg", Align: text.AlignRight},
		{Name: "Delta %", Align: text.AlignRight},
	})
	t.Render()

	_, _ = fmt.Fprintf(w, "(%d of %d rows) %s\n", len(rows), res.View.Total, baselineSummary(res))
}

func baselineSummary(res engine.Result) string {
	if !res.HasBaseline {
		return "no baseline: reductions are 0"
	}
	return fmt.Sprintf("baseline: %s, EF %s kgCO2e/kg",
		res.Baseline.Label, greenops.FormatFloat(res.Baseline.EF, 3))
}

// renderMaterials writes the catalog as a table.
func renderMaterials(w io.Writer, materials []catalog.Material, baselineID string) {
	if len(materials) == 0 {
		_, _ = fmt.Fprintln(w, "(0 materials)")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{
		"ID", "Cement", "Strength", "Clinker %", "SCMs", "EF", "Default dosage",
		"Transport", "Exposure", "Common",
	})
	for _, m := range materials {
		id := m.ID
		if id == baselineID {
			id += " (baseline)"
		}
		common := ""
		if m.Common {
			common = "yes"
		}
		exposure := strings.Join(m.ExposureClasses, " ")
		if !m.DeclaresExposure() {
			exposure = "-"
		}
		t.AppendRow(table.Row{
			id,
			m.Name,
			m.StrengthClass,
			greenops.FormatFloat(m.ClinkerFraction*100, 0),
			scmSummary(m.SCMs),
			greenops.FormatFloat(m.EF, 3),
			greenops.FormatFloat(m.DefaultDosageKgM3, 0),
			m.Transport.String(),
			exposure,
			common,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d materials)\n", len(materials))
}

// renderSensitivity writes one column of element totals per material over the
// distance axis, preceded by each material's slope and followed by the
// break-even distances.
func renderSensitivity(w io.Writer, series []engine.SensitivitySeries, crossovers []engine.Crossover) {
	if len(series) == 0 {
		_, _ = fmt.Fprintln(w, "(0 materials)")
		return
	}

	slopes := newTable(w)
	slopes.AppendHeader(table.Row{"ID", "Material", "Base kg", "Slope kg/km"})
	for _, s := range series {
		slopes.AppendRow(table.Row{
			s.MaterialID, s.Label,
			greenops.FormatFloat(s.Base, 0),
			greenops.FormatFloat(s.SlopeKgPerKm, 3),
		})
	}
	slopes.Render()

	t := newTable(w)
	header := table.Row{"Distance km"}
	for _, s := range series {
		header = append(header, s.MaterialID)
	}
	t.AppendHeader(header)
	for i, p := range series[0].Points {
		row := table.Row{greenops.FormatFloat(p.DistanceKm, 0)}
		for _, s := range series {
			row = append(row, greenops.FormatFloat(s.Points[i].Total, 0))
		}
		t.AppendRow(row)
	}
	t.Render()

	if len(crossovers) == 0 {
		_, _ = fmt.Fprintln(w, "No break-even distances in range.")
		return
	}
	cross := newTable(w)
	cross.AppendHeader(table.Row{"A", "B", "Break-even km", "Total kg"})
	for _, c := range crossovers {
		cross.AppendRow(table.Row{
			c.AID, c.BID,
			greenops.FormatFloat(c.DistanceKm, 1),
			greenops.FormatFloat(c.TotalKg, 0),
		})
	}
	cross.Render()
}

// renderSideBySide writes the chosen rows as columns.
func renderSideBySide(w io.Writer, comparisons []engine.Comparison, volumeM3 float64, color bool) {
	t := newTable(w)
	header := table.Row{""}
	for _, c := range comparisons {
		label := c.Row.Material.Label()
		var marks []string
		if c.IsBaseline {
			marks = append(marks, "baseline")
		}
		if c.IsBest {
			marks = append(marks, "lowest")
		}
		if len(marks) > 0 {
			label += " [" + strings.Join(marks, ", ") + "]"
		}
		header = append(header, label)
	}
	t.AppendHeader(header)

	line := func(name string, value func(c engine.Comparison) string) {
		row := table.Row{name}
		for _, c := range comparisons {
			row = append(row, value(c))
		}
		t.AppendRow(row)
	}
	line("ID", func(c engine.Comparison) string { return c.Row.ID() })
	line("SCMs", func(c engine.Comparison) string { return scmSummary(c.Row.Material.SCMs) })
	line("Dosage kg/m3", func(c engine.Comparison) string { return greenops.FormatFloat(c.Row.Dosage, 0) })
	line("A1-A3", func(c engine.Comparison) string { return greenops.FormatMass(c.Row.PerM3 * volumeM3) })
	line("A4", func(c engine.Comparison) string { return greenops.FormatMass(c.Row.A4) })
	line("Total", func(c engine.Comparison) string { return greenops.FormatMass(c.Row.Total) })
	line("vs lowest", func(c engine.Comparison) string { return "+" + greenops.FormatMass(c.DeltaVsBestKg) })
	line("vs baseline", func(c engine.Comparison) string {
		return colorBand(c.Row.Band, export.SignedPercent(c.DeltaVsBaselinePct)+"%", color)
	})
	t.Render()
}

// renderSavings writes a savings statement with its equivalencies.
func renderSavings(w io.Writer, s greenops.Savings) {
	verb := "saves"
	if s.Worse() {
		verb = "adds"
	}
	_, _ = fmt.Fprintf(w, "%s %s %s (%s) compared with %s\n",
		s.Label, verb,
		greenops.FormatMass(math.Abs(s.SavedKg)),
		greenops.FormatSignedPercent(s.SavedPct),
		s.BaselineID)
	_, _ = fmt.Fprintf(w, "  baseline %s, material %s\n",
		greenops.FormatMass(s.BaselineKg), greenops.FormatMass(s.MaterialKg))
	if !s.Equivalencies.IsEmpty {
		_, _ = fmt.Fprintf(w, "  %s\n", s.Equivalencies.DisplayText)
	}
}

func scmSummary(scms []catalog.SCM) string {
	if len(scms) == 0 {
		return "-"
	}
	parts := make([]string, len(scms))
	for i, s := range scms {
		parts[i] = s.Code + " " + greenops.FormatFloat(s.Fraction*100, 0) + "%"
	}
	return strings.Join(parts, ", ")
}
