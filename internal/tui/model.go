// Package tui is the interactive terminal comparison view. Every key that
// changes a design input or the query recomputes the full row set from the
// session, so what is on screen always matches one consistent pass.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/export"
	"github.com/rshade/binderlca/internal/greenops"
	listview "github.com/rshade/binderlca/internal/tui/list"
)

// ViewState is the screen currently shown.
type ViewState int

const (
	// ViewStateList is the ranked table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows one material with its distance sweep.
	ViewStateDetail
	// ViewStateCompare shows the compare set side by side.
	ViewStateCompare
	// ViewStateQuitting is set once the program is exiting.
	ViewStateQuitting
)

// Options configures a new model.
type Options struct {
	Inputs engine.DesignInputs
	Query  engine.Query
	// ExportDir is where 'e' writes the delimited export; empty means the working directory.
	ExportDir string
}

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	Path string
	Rows int
	Err  error
}

// Model is the Bubble Tea model for the comparison view.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	ctx     context.Context
	session *engine.Session
	state   ViewState

	inputs  engine.DesignInputs
	query   engine.Query
	result  engine.Result
	compare engine.CompareSet

	table      table.Model
	textInput  textinput.Model
	showFilter bool

	detail        engine.Row
	detailSavings *greenops.Savings
	detailSeries  engine.SensitivitySeries
	crossovers    []engine.Crossover
	points        *listview.Window[engine.SensitivityPoint]

	exportDir string
	status    string
	width     int
	height    int
}

// NewModel builds the model and computes the first row set.
func NewModel(ctx context.Context, session *engine.Session, opts Options) Model {
	q := opts.Query
	q.Offset, q.Limit = 0, 0
	if q.Sort == "" {
		q = engine.DefaultQuery()
	}
	if q.Scope == "" {
		q.Scope = engine.ScopeAll
	}

	ti := textinput.New()
	ti.Placeholder = "name, notes or tag"
	ti.CharLimit = 64
	ti.SetValue(q.Search)

	m := Model{
		ctx:       ctx,
		session:   session,
		state:     ViewStateList,
		inputs:    opts.Inputs.Normalized(),
		query:     q,
		textInput: ti,
		exportDir: opts.ExportDir,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.recompute()
	return m
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, session *engine.Session, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, session, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuildTable()
		if m.points != nil {
			m.points.SetHeight(m.pointsHeight())
		}
		return m, nil
	case exportDoneMsg:
		if msg.Err != nil {
			m.status = "Export failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path)
		}
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateCompare:
		return m.handleCompareUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.query.Search = m.textInput.Value()
			m.recompute()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

//nolint:gocyclo,cyclop // One case per key binding.
func (m Model) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		if row, ok := m.cursorRow(); ok {
			m.openDetail(row)
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.query.Search != "" {
			m.textInput.SetValue("")
			m.query.Search = ""
			m.recompute()
		}
		return m, nil
	case keySort:
		m.cycleSort()
	case keyReverse:
		if m.query.Dir == engine.Desc {
			m.query.Dir = engine.Asc
		} else {
			m.query.Dir = engine.Desc
		}
	case keyScope:
		m.cycleScope()
	case keyA4:
		m.inputs.IncludeA4 = !m.inputs.IncludeA4
	case keyPolicy:
		if m.inputs.Policy == engine.PolicyPerCement {
			m.inputs.Policy = engine.PolicyGlobal
		} else {
			m.inputs.Policy = engine.PolicyPerCement
		}
	case keyDistUp, keyDistUp2:
		m.inputs.DistanceKm += distanceStepKm
	case keyDistDn:
		m.inputs.DistanceKm = max(0, m.inputs.DistanceKm-distanceStepKm)
	case keyVolUp:
		m.inputs.VolumeM3 += volumeStepM3
	case keyVolDn:
		m.inputs.VolumeM3 = max(0, m.inputs.VolumeM3-volumeStepM3)
	case keyDoseUp:
		m.inputs.GlobalDosage += dosageStepKg
	case keyDoseDn:
		m.inputs.GlobalDosage = max(0, m.inputs.GlobalDosage-dosageStepKg)
	case keyCompare, keySpace:
		if row, ok := m.cursorRow(); ok {
			m.toggleCompare(row.ID())
		}
		return m, nil
	case keyView:
		if m.compare.Len() > 0 {
			m.state = ViewStateCompare
		} else {
			m.status = "Select up to 3 rows with 'c' to compare"
		}
		return m, nil
	case keyExport:
		return m, exportCmd(m.exportDir, m.result.View.All, m.result.Inputs)
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}

	m.recompute()
	return m, nil
}

func (m Model) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBack:
		m.state = ViewStateList
		m.table.Focus()
		return m, nil
	case keyCompare:
		m.toggleCompare(m.detail.ID())
		return m, nil
	}
	if m.points != nil {
		m.points.Update(keyMsg)
	}
	return m, nil
}

func (m Model) handleCompareUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBack, keyView:
		m.state = ViewStateList
		return m, nil
	case "1", "2", "3":
		i := int(keyMsg.String()[0] - '1')
		if ids := m.compare.IDs(); i < len(ids) {
			m.compare = m.compare.Remove(ids[i])
			m.rebuildTable()
		}
		if m.compare.Len() == 0 {
			m.state = ViewStateList
		}
	}
	return m, nil
}

// recompute runs the full pipeline for the current inputs and query.
func (m *Model) recompute() {
	m.inputs = m.inputs.Normalized()
	m.result = m.session.Evaluate(m.ctx, m.inputs, m.query)
	m.rebuildTable()
}

func (m *Model) cycleSort() {
	keys := engine.SortKeys()
	i := slices.Index(keys, m.query.Sort)
	m.query.Sort = keys[(i+1)%len(keys)]
	m.query.Dir = engine.Asc
	if m.query.Sort == engine.SortReduction {
		m.query.Dir = engine.Desc
	}
}

func (m *Model) cycleScope() {
	switch m.query.Scope {
	case engine.ScopeAll:
		m.query.Scope = engine.ScopeCompatible
	case engine.ScopeCompatible:
		m.query.Scope = engine.ScopeCommon
	default:
		m.query.Scope = engine.ScopeAll
	}
}

func (m *Model) toggleCompare(id string) {
	if m.compare.Full() && !m.compare.Contains(id) {
		m.status = fmt.Sprintf("Compare holds at most %d materials", engine.MaxCompare)
		return
	}
	m.compare = m.compare.Toggle(id)
	m.status = fmt.Sprintf("Comparing %d/%d", m.compare.Len(), engine.MaxCompare)
	m.rebuildTable()
}

func (m *Model) cursorRow() (engine.Row, bool) {
	rows := m.result.View.All
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return engine.Row{}, false
	}
	return rows[i], true
}

// openDetail switches to the detail screen for row.
func (m *Model) openDetail(row engine.Row) {
	m.state = ViewStateDetail
	m.detail = row
	m.detailSavings = nil

	all := m.session.Recompute(m.ctx, m.inputs)
	if s, err := greenops.SavingsVsBaseline(all, m.result.Baseline, row.ID()); err == nil {
		m.detailSavings = &s
	}

	series := engine.Sensitivity([]engine.Row{row}, m.inputs, engine.DefaultSensitivityMaxKm, 0)
	m.detailSeries = series[0]
	m.crossovers = detailCrossovers(row, m.result.View.All, m.inputs)
	m.points = listview.New(m.detailSeries.Points, m.pointsHeight(), renderPoint)
	m.points.SetCursor(nearestPoint(m.detailSeries.Points, m.inputs.DistanceKm))
}

func (m Model) pointsHeight() int {
	return max(minHeight, m.height-detailChromeHeight-len(m.crossovers))
}

// detailCrossovers returns the distances at which row breaks even with each
// of the listed rows within the default sweep.
func detailCrossovers(row engine.Row, rows []engine.Row, in engine.DesignInputs) []engine.Crossover {
	pair := []engine.Row{row}
	for _, r := range rows {
		if r.ID() != row.ID() {
			pair = append(pair, r)
		}
	}
	series := engine.Sensitivity(pair, in, engine.DefaultSensitivityMaxKm, 0)

	var out []engine.Crossover
	for _, c := range engine.Crossovers(series, engine.DefaultSensitivityMaxKm) {
		if c.AID == row.ID() {
			out = append(out, c)
		}
	}
	return out
}

// nearestPoint returns the index of the sweep point closest to km.
func nearestPoint(points []engine.SensitivityPoint, km float64) int {
	best := 0
	for i, p := range points {
		if abs(p.DistanceKm-km) < abs(points[best].DistanceKm-km) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// exportCmd writes rows to the default export file in dir.
func exportCmd(dir string, rows []engine.Row, in engine.DesignInputs) tea.Cmd {
	rows = slices.Clone(rows)
	return func() tea.Msg {
		path := filepath.Join(dir, export.DefaultFilename)
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Path: path, Err: fmt.Errorf("creating %s: %w", path, err)}
		}
		err = export.Write(f, rows, in)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		return exportDoneMsg{Path: path, Rows: len(rows), Err: err}
	}
}

// State returns the current screen.
func (m Model) State() ViewState { return m.state }

// Inputs returns the current design inputs.
func (m Model) Inputs() engine.DesignInputs { return m.inputs }

// Query returns the current query.
func (m Model) Query() engine.Query { return m.query }

// Result returns the last computation.
func (m Model) Result() engine.Result { return m.result }

// CompareIDs returns the materials selected for comparison.
func (m Model) CompareIDs() []string { return m.compare.IDs() }

// Status returns the last status line message.
func (m Model) Status() string { return m.status }
