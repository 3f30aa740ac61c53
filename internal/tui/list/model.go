package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item; selected marks the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// Window keeps a cursor over items and the range of rows currently shown.
type Window[T any] struct {
	items  []T
	render RenderFunc[T]
	cursor int
	top    int
	height int
}

// New creates a window of the given height over items.
func New[T any](items []T, height int, render RenderFunc[T]) *Window[T] {
	if height < 1 {
		height = 1
	}
	return &Window[T]{items: items, render: render, height: height}
}

// Init implements tea.Model.
func (w *Window[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys and resizes on window changes.
func (w *Window[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		w.handleKey(msg)
	case tea.WindowSizeMsg:
		w.SetHeight(msg.Height)
	}
	return w, nil
}

//nolint:exhaustive // Only navigation keys move the cursor.
func (w *Window[T]) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		w.SetCursor(w.cursor - 1)
	case tea.KeyDown:
		w.SetCursor(w.cursor + 1)
	case tea.KeyPgUp:
		w.SetCursor(w.cursor - w.height)
	case tea.KeyPgDown:
		w.SetCursor(w.cursor + w.height)
	case tea.KeyHome:
		w.SetCursor(0)
	case tea.KeyEnd:
		w.SetCursor(len(w.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			w.SetCursor(w.cursor + 1)
		case "k":
			w.SetCursor(w.cursor - 1)
		}
	}
}

// SetCursor moves the cursor, clamped to the items, and scrolls it into view.
func (w *Window[T]) SetCursor(i int) {
	if len(w.items) == 0 {
		w.cursor, w.top = 0, 0
		return
	}
	w.cursor = max(0, min(i, len(w.items)-1))
	switch {
	case w.cursor < w.top:
		w.top = w.cursor
	case w.cursor >= w.top+w.height:
		w.top = w.cursor - w.height + 1
	}
}

// SetHeight changes the number of visible rows.
func (w *Window[T]) SetHeight(h int) {
	w.height = max(1, h)
	w.SetCursor(w.cursor)
}

// View renders the visible rows.
func (w *Window[T]) View() string {
	from, to := w.Visible()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, w.render(w.items[i], i == w.cursor))
	}
	return strings.Join(lines, "\n")
}

// Visible returns the half-open range of rendered item indexes.
func (w *Window[T]) Visible() (int, int) {
	return w.top, min(len(w.items), w.top+w.height)
}

// Len returns the number of items.
func (w *Window[T]) Len() int {
	return len(w.items)
}

// Cursor returns the cursor index.
func (w *Window[T]) Cursor() int {
	return w.cursor
}

// Selected returns the item under the cursor, or false when the window is empty.
func (w *Window[T]) Selected() (T, bool) {
	if len(w.items) == 0 {
		var zero T
		return zero, false
	}
	return w.items[w.cursor], true
}
