package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/export"
	"github.com/rshade/binderlca/internal/greenops"
)

// View renders the current screen (Bubble Tea interface).
func (m Model) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateCompare:
		return m.renderCompareView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *Model) rebuildTable() {
	cursor := m.table.Cursor()

	columns := []table.Column{
		{Title: "Cmp", Width: 3},       //nolint:mnd // Column width.
		{Title: "Cement", Width: 24},   //nolint:mnd // Column width.
		{Title: "Strength", Width: 8},  //nolint:mnd // Column width.
		{Title: "Clinker%", Width: 8},  //nolint:mnd // Column width.
		{Title: "EF", Width: 6},        //nolint:mnd // Column width.
		{Title: "Dosage", Width: 6},    //nolint:mnd // Column width.
		{Title: "A1-A3/m3", Width: 8},  //nolint:mnd // Column width.
		{Title: "A4 kg", Width: 8},     //nolint:mnd // Column width.
		{Title: "Total kg", Width: 10}, //nolint:mnd // Column width.
		{Title: "Delta%", Width: 6},    //nolint:mnd // Column width.
		{Title: "Band", Width: 8},      //nolint:mnd // Column width.
		{Title: "Tags", Width: 22},     //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.result.View.All))
	for i, r := range m.result.View.All {
		mark := ""
		if m.compare.Contains(r.ID()) {
			mark = "*"
		}
		if r.ID() == m.result.Baseline.MaterialID {
			mark += "B"
		}
		rows[i] = table.Row{
			mark,
			r.Material.Name,
			r.Material.StrengthClass,
			greenops.FormatFloat(r.Material.ClinkerFraction*100, 0),
			greenops.FormatFloat(r.Material.EF, 3),
			greenops.FormatFloat(r.Dosage, 0),
			greenops.FormatFloat(r.PerM3, 0),
			greenops.FormatFloat(r.A4, 0),
			greenops.FormatFloat(r.Total, 0),
			export.SignedPercent(r.Reduction),
			string(r.Band),
			strings.Join(r.Tags, " "),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(minHeight, m.height-chromeHeight)),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	if len(rows) > 0 {
		t.SetCursor(min(cursor, len(rows)-1))
	}
	m.table = t
}

func (m Model) renderListView() string {
	sections := []string{
		m.renderInputsBar(),
		m.table.View(),
		m.renderStatusBar(),
	}
	if m.showFilter {
		sections = append(sections, LabelStyle.Render("Search: ")+m.textInput.View())
	}
	sections = append(sections, SubtleStyle.Render(
		"[s] sort  [r] reverse  [f] scope  [/] search  [a] A4  [p] policy  [+/-] distance  "+
			"[ ] ] volume  [{ }] dosage  [c] compare  [v] side by side  [e] export  [q] quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderInputsBar() string {
	in := m.result.Inputs
	dosage := greenops.FormatFloat(in.GlobalDosage, 0) + " kg/m3"
	if in.Policy == engine.PolicyPerCement {
		dosage = "per cement"
	}
	a4 := "off"
	if in.IncludeA4 {
		a4 = "on"
	}
	baseline := WarningStyle.Render("none")
	if m.result.HasBaseline {
		baseline = ValueStyle.Render(m.result.Baseline.Label)
	}
	return strings.Join([]string{
		LabelStyle.Render("Volume ") + ValueStyle.Render(greenops.FormatFloat(in.VolumeM3, 0)+" m3"),
		LabelStyle.Render("Exposure ") + ValueStyle.Render(in.ExposureClass),
		LabelStyle.Render("Distance ") + ValueStyle.Render(greenops.FormatFloat(in.DistanceKm, 0)+" km"),
		LabelStyle.Render("A4 ") + ValueStyle.Render(a4),
		LabelStyle.Render("Dosage ") + ValueStyle.Render(dosage),
		LabelStyle.Render("Baseline ") + baseline,
	}, "  ")
}

func (m Model) renderStatusBar() string {
	v := m.result.View
	status := fmt.Sprintf("Sort: %s %s | Scope: %s | Rows: %d", m.query.Sort, m.query.Dir, m.query.Scope, v.Total)
	if m.query.Search != "" {
		status += fmt.Sprintf(" | Search: %q", m.query.Search)
	}
	if n := m.compare.Len(); n > 0 {
		status += fmt.Sprintf(" | Compare: %d/%d", n, engine.MaxCompare)
	}
	line := SubtleStyle.Render(status)
	if m.status != "" {
		line += "  " + InfoStyle.Render(m.status)
	}
	return line
}

func (m Model) renderDetailView() string {
	r := m.detail
	mat := r.Material
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(mat.Label()))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-18s", label)))
		b.WriteString(ValueStyle.Render(value))
		b.WriteString("\n")
	}
	field("ID", mat.ID)
	if mat.Standard != "" {
		field("Standard", mat.Standard)
	}
	field("Clinker", greenops.FormatFloat(mat.ClinkerFraction*100, 0)+"%")
	if mat.HasSCMs() {
		field("SCMs", describeSCMs(mat.SCMs))
	}
	field("EF A1-A3", greenops.FormatFloat(mat.EF, 3)+" kgCO2e/kg")
	field("Transport", mat.Transport.String())
	field("Exposure classes", exposureText(mat, r.ExposureCompatible))
	field("Dosage", greenops.FormatFloat(r.Dosage, 0)+" kg/m3")
	field("A1-A3", greenops.FormatFloat(r.PerM3, 1)+" kgCO2e/m3")
	field("A4", greenops.FormatMass(r.A4))
	field("Element total", greenops.FormatMass(r.Total))
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-18s", "Delta vs baseline")))
	b.WriteString(RenderBand(r.Band, export.SignedPercent(r.Reduction)+"% ("+string(r.Band)+")"))
	b.WriteString("\n")
	if m.detailSavings != nil && m.detailSavings.SavedKg > 0 && !m.detailSavings.Equivalencies.IsEmpty {
		field("Saves", greenops.FormatMass(m.detailSavings.SavedKg))
		b.WriteString(SubtleStyle.Render(m.detailSavings.Equivalencies.DisplayText))
		b.WriteString("\n")
	}
	for i, c := range m.crossovers {
		label := ""
		if i == 0 {
			label = "Break-even"
		}
		field(label, fmt.Sprintf("%s at %s km (%s)",
			c.BLabel, greenops.FormatFloat(c.DistanceKm, 1), greenops.FormatMass(c.TotalKg)))
	}
	if mat.Notes != "" {
		b.WriteString("\n" + SubtleStyle.Render(mat.Notes) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%10s  %12s  %14s", "Distance", "A4", "Total")))
	b.WriteString("\n")
	if m.points != nil {
		b.WriteString(m.points.View())
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf(
		"Slope %s kg/km  [up/down] scroll  [c] compare  [esc] back  [q] quit",
		greenops.FormatFloat(m.detailSeries.SlopeKgPerKm, 2))))
	return b.String()
}

func renderPoint(p engine.SensitivityPoint, selected bool) string {
	line := fmt.Sprintf("%7s km  %12s  %14s",
		greenops.FormatFloat(p.DistanceKm, 0),
		greenops.FormatMass(p.A4),
		greenops.FormatMass(p.Total))
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderCompareView() string {
	rows := m.session.Recompute(m.ctx, m.inputs)
	comparisons := engine.SideBySide(rows, m.compare, m.result.Baseline)

	cards := make([]string, 0, len(comparisons))
	for i, c := range comparisons {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s\n", i+1, ValueStyle.Render(c.Row.Material.Label()))
		var marks []string
		if c.IsBaseline {
			marks = append(marks, "baseline")
		}
		if c.IsBest {
			marks = append(marks, "lowest")
		}
		if len(marks) > 0 {
			b.WriteString(InfoStyle.Render(strings.Join(marks, ", ")))
		}
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Dosage"), greenops.FormatFloat(c.Row.Dosage, 0)+" kg/m3")
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("A1-A3 "), greenops.FormatMass(c.Row.PerM3*m.result.Inputs.VolumeM3))
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("A4    "), greenops.FormatMass(c.Row.A4))
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Total "), ValueStyle.Render(greenops.FormatMass(c.Row.Total)))
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("vs best"), "+"+greenops.FormatMass(c.DeltaVsBestKg))
		fmt.Fprintf(&b, "%s %s", LabelStyle.Render("vs baseline"),
			RenderBand(c.Row.Band, export.SignedPercent(c.DeltaVsBaselinePct)+"%"))

		style := cardStyle
		if c.IsBest {
			style = bestCardStyle
		}
		cards = append(cards, style.Render(b.String()))
	}

	if len(cards) == 0 {
		cards = append(cards, SubtleStyle.Render("No selected material is in the catalog."))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Side by side"),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		SubtleStyle.Render("[1-3] remove  [esc] back  [q] quit"),
	)
}

func describeSCMs(scms []catalog.SCM) string {
	parts := make([]string, 0, len(scms))
	for _, s := range scms {
		parts = append(parts, fmt.Sprintf("%s %s%%", s.Type.Label(), greenops.FormatFloat(s.Fraction*100, 0)))
	}
	return strings.Join(parts, ", ")
}

func exposureText(m catalog.Material, compatible bool) string {
	if !m.DeclaresExposure() {
		return "not declared (treated as compatible)"
	}
	text := strings.Join(m.ExposureClasses, " ")
	if !compatible {
		text += " (incompatible)"
	}
	return text
}
